package engine

import "strings"

// check inspects a candidate against the current rule set. A nil outcome
// means the candidate passed and the next check runs.
type check interface {
	Name() string
	Apply(source, destination string, existing RuleSet) *Outcome
}

// Validator gates admission of candidate rules. It is stateless and safe for
// concurrent use; every call receives the rule set snapshot explicitly and
// nothing is ever mutated.
type Validator struct {
	checks []check
}

// NewValidator builds the admission chain. Check order is part of the
// contract: the first check that produces an outcome wins.
func NewValidator() *Validator {
	return &Validator{
		checks: []check{
			emptinessCheck{},
			duplicateSourceCheck{},
			cycleCheck{},
			subdomainCheck{},
		},
	}
}

// Validate decides whether the (source, destination) pair may join the rule
// set. Duplicate and cycle checks compare the raw, untrimmed candidate
// strings against stored rules; normalization happens only inside the
// subdomain heuristic. Callers that persist an admitted rule are expected to
// trim it first, so a whitespace-padded duplicate slips past this check —
// that asymmetry is part of the contract.
func (v *Validator) Validate(source, destination string, existing RuleSet) Outcome {
	for _, c := range v.checks {
		if out := c.Apply(source, destination, existing); out != nil {
			out.Check = c.Name()
			return *out
		}
	}
	return Outcome{Status: StatusAccepted}
}

type emptinessCheck struct{}

func (emptinessCheck) Name() string { return "emptiness" }

func (emptinessCheck) Apply(source, destination string, _ RuleSet) *Outcome {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(destination) == "" {
		return &Outcome{Status: StatusRejected, Reason: ReasonEmpty}
	}
	return nil
}

type duplicateSourceCheck struct{}

func (duplicateSourceCheck) Name() string { return "duplicate_source" }

func (duplicateSourceCheck) Apply(source, _ string, existing RuleSet) *Outcome {
	for _, r := range existing {
		if r.Source == source {
			return &Outcome{Status: StatusRejected, Reason: ReasonDuplicateSource}
		}
	}
	return nil
}

type cycleCheck struct{}

func (cycleCheck) Name() string { return "cycle" }

// Apply detects the two-hop loop only: the candidate source was already some
// rule's destination. Longer redirect chains are not walked.
func (cycleCheck) Apply(source, _ string, existing RuleSet) *Outcome {
	for _, r := range existing {
		if r.Destination == source {
			return &Outcome{Status: StatusRejected, Reason: ReasonCycle}
		}
	}
	return nil
}

type subdomainCheck struct{}

func (subdomainCheck) Name() string { return "subdomain_mismatch" }

// Apply never rejects; a positive delta downgrades the accept to an advisory.
func (subdomainCheck) Apply(source, destination string, _ RuleSet) *Outcome {
	if delta := SubdomainDelta(source, destination); delta > 0 {
		return &Outcome{Status: StatusAdvisory, SubdomainDelta: delta}
	}
	return nil
}

// SubdomainDelta estimates how far apart the subdomain depth of the two
// sides is. It removes the first occurrence of the shorter normalized domain
// from the longer one (plain substring removal, not regex) and counts the
// dots left over. Zero when the shorter side never occurs in the longer one.
// A delta above zero usually means a rewrite anchored on path alone will
// land on the wrong host.
func SubdomainDelta(source, destination string) int {
	longer, shorter := GetDomain(source), GetDomain(destination)
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}
	residual := strings.Replace(longer, shorter, "", 1)
	if len(residual) == len(longer) {
		return 0
	}
	return strings.Count(residual, ".")
}
