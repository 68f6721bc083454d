package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"redirect-manager/internal/engine"
	"redirect-manager/internal/messages"
	"redirect-manager/internal/metrics"
	"redirect-manager/internal/repository"
	"redirect-manager/internal/service"
)

type Handler struct {
	logger *slog.Logger
	svc    service.Service
	tracer trace.Tracer
}

func NewHandler(logger *slog.Logger, svc service.Service) *Handler {
	return &Handler{
		logger: logger,
		svc:    svc,
		tracer: otel.Tracer("httpapi"),
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /rules", h.instrument("list_rules", h.listRules))
	mux.HandleFunc("POST /rules", h.instrument("add_rule", h.addRule))
	mux.HandleFunc("DELETE /rules/{id}", h.instrument("delete_rule", h.deleteRule))
	mux.HandleFunc("GET /rules/stats", h.instrument("rule_stats", h.ruleStats))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// instrument records the duration histogram per route and final status.
func (h *Handler) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.ObserveRequest(route, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}
}

type addRuleRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	IsRegex     bool   `json:"is_regex"`
}

func (h *Handler) addRule(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "addRule")
	defer span.End()

	var req addRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.AddRule(ctx, req.Source, req.Destination, req.IsRegex)
	if err != nil {
		h.logger.Error("Failed to add rule", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !res.Outcome.Admitted() {
		writeJSON(w, http.StatusUnprocessableEntity, rejectionResponse{
			Status:  string(res.Outcome.Status),
			Reason:  string(res.Outcome.Reason),
			Message: outcomeMessage(res.Outcome),
		})
		return
	}

	resp := addRuleResponse{
		Status:  string(res.Outcome.Status),
		Message: outcomeMessage(res.Outcome),
		Rule:    toRuleResponse(res.Rule),
	}
	if res.Outcome.Status == engine.StatusAdvisory {
		resp.SubdomainDelta = res.Outcome.SubdomainDelta
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "listRules")
	defer span.End()

	rules, err := h.svc.ListRules(ctx)
	if err != nil {
		h.logger.Error("Failed to list rules", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]ruleResponse, 0, len(rules))
	for i, rule := range rules {
		out = append(out, ruleResponse{
			Position:    i,
			Source:      rule.Source,
			Destination: rule.Destination,
			IsRegex:     rule.IsRegex,
		})
	}
	writeJSON(w, http.StatusOK, listRulesResponse{Rules: out})
}

func (h *Handler) deleteRule(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "deleteRule")
	defer span.End()

	_, err := h.svc.DeleteRule(ctx, r.PathValue("id"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrBadElementID):
		writeError(w, http.StatusBadRequest, messages.MsgBadElementID)
	case errors.Is(err, repository.ErrRuleNotFound):
		writeError(w, http.StatusNotFound, messages.MsgRuleMissing)
	default:
		h.logger.Error("Failed to delete rule", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) ruleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ruleStats")
	defer span.End()

	stats, err := h.svc.TodayStats(ctx)
	if err != nil {
		h.logger.Error("Failed to get stats", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Accepted:          stats.Accepted,
		Advisories:        stats.Advisories,
		RejectedEmpty:     stats.RejectedEmpty,
		RejectedDuplicate: stats.RejectedDuplicate,
		RejectedCycle:     stats.RejectedCycle,
		Deleted:           stats.Deleted,
	})
}
