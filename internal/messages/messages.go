package messages

// User-facing text for validation outcomes. The engine never sees these; the
// API layer picks one from the outcome classification.
const (
	MsgRuleAdded   = "Redirect rule added."
	MsgRuleRemoved = "Redirect rule removed."

	// MsgSubdomainAdvisory takes the subdomain delta.
	MsgSubdomainAdvisory = "Rule added, but the source and destination differ by %d subdomain level(s); the redirect may not resolve as expected."

	MsgReasonEmpty           = "Source and destination must not be empty."
	MsgReasonDuplicateSource = "A rule with this source already exists."
	MsgReasonCycle           = "This source is already the destination of another rule; adding it would create a redirect loop."

	MsgBadElementID = "Could not work out which rule to delete; nothing was removed."
	MsgRuleMissing  = "No rule exists at that position."
)
