package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"redirect-manager/internal/engine"
	"redirect-manager/internal/messages"
	"redirect-manager/internal/repository"
)

type ruleResponse struct {
	Position    int    `json:"position"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	IsRegex     bool   `json:"is_regex"`
}

type listRulesResponse struct {
	Rules []ruleResponse `json:"rules"`
}

type addRuleResponse struct {
	Status         string       `json:"status"`
	Message        string       `json:"message"`
	SubdomainDelta int          `json:"subdomain_delta,omitempty"`
	Rule           ruleResponse `json:"rule"`
}

type rejectionResponse struct {
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type statsResponse struct {
	Accepted          int64 `json:"accepted"`
	Advisories        int64 `json:"advisories"`
	RejectedEmpty     int64 `json:"rejected_empty"`
	RejectedDuplicate int64 `json:"rejected_duplicate"`
	RejectedCycle     int64 `json:"rejected_cycle"`
	Deleted           int64 `json:"deleted"`
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func toRuleResponse(rule *repository.RedirectRule) ruleResponse {
	return ruleResponse{
		Position:    rule.Position,
		Source:      rule.Source,
		Destination: rule.Destination,
		IsRegex:     rule.IsRegex,
	}
}

// outcomeMessage maps an outcome classification to its user-facing text. The
// engine supplies only the classification; presentation lives here.
func outcomeMessage(o engine.Outcome) string {
	switch o.Status {
	case engine.StatusAdvisory:
		return fmt.Sprintf(messages.MsgSubdomainAdvisory, o.SubdomainDelta)
	case engine.StatusRejected:
		switch o.Reason {
		case engine.ReasonEmpty:
			return messages.MsgReasonEmpty
		case engine.ReasonDuplicateSource:
			return messages.MsgReasonDuplicateSource
		case engine.ReasonCycle:
			return messages.MsgReasonCycle
		}
	}
	return messages.MsgRuleAdded
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
