package engine

// Rule is one redirect: requests matching Source go to Destination. When
// IsRegex is set, Source is a regular expression pattern instead of a
// literal domain/path.
type Rule struct {
	Source      string
	Destination string
	IsRegex     bool
}

// RuleSet is the ordered list of active rules. Order matters for display and
// position-based deletion only; validation treats it as a read-only snapshot.
type RuleSet []Rule

type Status string

const (
	StatusAccepted Status = "accepted"
	StatusAdvisory Status = "advisory"
	StatusRejected Status = "rejected"
)

type Reason string

const (
	ReasonEmpty           Reason = "empty"
	ReasonDuplicateSource Reason = "duplicate_source"
	ReasonCycle           Reason = "cycle"
)

// Outcome is the result of validating one candidate rule.
type Outcome struct {
	Status Status
	// Reason is set only when Status is StatusRejected.
	Reason Reason
	// Check names the admission check that produced the outcome, for logs
	// and metrics labels. Empty for a plain accept.
	Check string
	// SubdomainDelta is set only when Status is StatusAdvisory: the number
	// of leftover dot-separated labels after removing the shorter normalized
	// domain from the longer one.
	SubdomainDelta int
}

// Admitted reports whether the candidate may join the rule set. Advisory
// outcomes are admitted.
func (o Outcome) Admitted() bool {
	return o.Status != StatusRejected
}
