package engine

import "testing"

func TestValidator_Validate(t *testing.T) {
	existing := RuleSet{
		{Source: "a.com", Destination: "b.com"},
		{Source: "c.com", Destination: "d.com"},
	}

	tests := []struct {
		name        string
		source      string
		destination string
		existing    RuleSet
		wantStatus  Status
		wantReason  Reason
		wantCheck   string
		wantDelta   int
	}{
		{
			name:        "both empty",
			source:      "",
			destination: "",
			wantStatus:  StatusRejected,
			wantReason:  ReasonEmpty,
			wantCheck:   "emptiness",
		},
		{
			name:        "whitespace only source",
			source:      "   \t",
			destination: "b.com",
			wantStatus:  StatusRejected,
			wantReason:  ReasonEmpty,
			wantCheck:   "emptiness",
		},
		{
			name:        "whitespace only destination",
			source:      "a.com",
			destination: " ",
			wantStatus:  StatusRejected,
			wantReason:  ReasonEmpty,
			wantCheck:   "emptiness",
		},
		{
			name:        "emptiness dominates duplicate",
			source:      " ",
			destination: " ",
			existing:    RuleSet{{Source: " ", Destination: "x"}},
			wantStatus:  StatusRejected,
			wantReason:  ReasonEmpty,
			wantCheck:   "emptiness",
		},
		{
			name:        "duplicate source",
			source:      "a.com",
			destination: "z.com",
			existing:    existing,
			wantStatus:  StatusRejected,
			wantReason:  ReasonDuplicateSource,
			wantCheck:   "duplicate_source",
		},
		{
			name:        "duplicate source regardless of destination",
			source:      "a.com",
			destination: "b.com",
			existing:    existing,
			wantStatus:  StatusRejected,
			wantReason:  ReasonDuplicateSource,
		},
		{
			name:        "whitespace padded duplicate passes raw comparison",
			source:      " a.com",
			destination: "z.com",
			existing:    existing,
			wantStatus:  StatusAccepted,
		},
		{
			name:        "cycle with existing destination",
			source:      "b.com",
			destination: "q.com",
			existing:    existing,
			wantStatus:  StatusRejected,
			wantReason:  ReasonCycle,
			wantCheck:   "cycle",
		},
		{
			name:        "cycle fires without a duplicate source",
			source:      "d.com",
			destination: "a.com",
			existing:    existing,
			wantStatus:  StatusRejected,
			wantReason:  ReasonCycle,
		},
		{
			name:        "plain accept",
			source:      "x.com",
			destination: "y.com",
			existing:    existing,
			wantStatus:  StatusAccepted,
		},
		{
			name:        "advisory source deeper",
			source:      "one.nickschorr.com",
			destination: "nickschorr.com",
			wantStatus:  StatusAdvisory,
			wantCheck:   "subdomain_mismatch",
			wantDelta:   1,
		},
		{
			name:        "advisory destination deeper",
			source:      "nickschorr.com",
			destination: "one.nickschorr.com",
			wantStatus:  StatusAdvisory,
			wantDelta:   1,
		},
		{
			name:        "equal depth no advisory",
			source:      "one.x.com",
			destination: "two.x.com",
			wantStatus:  StatusAccepted,
		},
		{
			name:        "five levels apart",
			source:      "one.two.three.four.five.nickschorr.com",
			destination: "nickschorr.com",
			wantStatus:  StatusAdvisory,
			wantDelta:   5,
		},
		{
			name:        "paths stripped before heuristic",
			source:      "a.com",
			destination: "a.com/test/",
			existing:    RuleSet{{Source: "a.com/path/", Destination: "a.com/path/test/"}},
			wantStatus:  StatusAccepted,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.source, tt.destination, tt.existing)
			if got.Status != tt.wantStatus {
				t.Errorf("Validate() status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Validate() reason = %v, want %v", got.Reason, tt.wantReason)
			}
			if tt.wantCheck != "" && got.Check != tt.wantCheck {
				t.Errorf("Validate() check = %v, want %v", got.Check, tt.wantCheck)
			}
			if got.SubdomainDelta != tt.wantDelta {
				t.Errorf("Validate() delta = %v, want %v", got.SubdomainDelta, tt.wantDelta)
			}
			if got.Admitted() != (tt.wantStatus != StatusRejected) {
				t.Errorf("Validate() admitted = %v for status %v", got.Admitted(), got.Status)
			}
		})
	}
}

// Validate is a pure function of its inputs: repeating a call must yield an
// identical outcome and leave the snapshot untouched.
func TestValidator_ValidateIsPure(t *testing.T) {
	v := NewValidator()
	existing := RuleSet{{Source: "a.com", Destination: "b.com"}}

	first := v.Validate("one.nickschorr.com", "nickschorr.com", existing)
	second := v.Validate("one.nickschorr.com", "nickschorr.com", existing)
	if first != second {
		t.Errorf("outcomes differ: %+v vs %+v", first, second)
	}
	if existing[0].Source != "a.com" || existing[0].Destination != "b.com" {
		t.Errorf("rule set mutated: %+v", existing)
	}
}

func TestSubdomainDelta(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		destination string
		want        int
	}{
		{name: "identical", source: "a.com", destination: "a.com", want: 0},
		{name: "one level", source: "one.nickschorr.com", destination: "nickschorr.com", want: 1},
		{name: "symmetric", source: "nickschorr.com", destination: "one.nickschorr.com", want: 1},
		{name: "unrelated hosts", source: "a.com", destination: "b.org", want: 0},
		{name: "protocol and path ignored", source: "https://one.nickschorr.com/p", destination: "nickschorr.com/q", want: 1},
		{name: "five levels", source: "one.two.three.four.five.nickschorr.com", destination: "nickschorr.com", want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubdomainDelta(tt.source, tt.destination); got != tt.want {
				t.Errorf("SubdomainDelta(%q, %q) = %d, want %d", tt.source, tt.destination, got, tt.want)
			}
		})
	}
}
