package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"redirect-manager/internal/announce"
	"redirect-manager/internal/engine"
	"redirect-manager/internal/metrics"
	"redirect-manager/internal/repository"
)

// ErrBadElementID means the delete identifier carried no rule index; the
// delete must be aborted without touching the rule set.
var ErrBadElementID = errors.New("element id carries no rule index")

type Announcer interface {
	Announce(kind announce.Kind, source string)
}

// AddResult pairs the validation outcome with the stored rule. Rule is nil
// when the outcome is a rejection.
type AddResult struct {
	Outcome engine.Outcome
	Rule    *repository.RedirectRule
}

type Service interface {
	AddRule(ctx context.Context, source, destination string, isRegex bool) (*AddResult, error)
	DeleteRule(ctx context.Context, elementID string) (*repository.RedirectRule, error)
	ListRules(ctx context.Context) (engine.RuleSet, error)
	TodayStats(ctx context.Context) (*repository.RuleStats, error)
	StartMetricsUpdater(ctx context.Context)
}

type RedirectService struct {
	logger    *slog.Logger
	rules     repository.RuleRepository
	stats     repository.StatsRepository
	validator *engine.Validator
	announcer Announcer
	tracer    trace.Tracer
}

func NewRedirectService(
	logger *slog.Logger,
	rules repository.RuleRepository,
	stats repository.StatsRepository,
	announcer Announcer,
) Service {
	return &RedirectService{
		logger:    logger,
		rules:     rules,
		stats:     stats,
		validator: engine.NewValidator(),
		announcer: announcer,
		tracer:    otel.Tracer("service"),
	}
}

// AddRule validates the candidate against the current snapshot and persists
// it when admitted. Validation sees the raw strings; only the stored rule is
// trimmed, so the duplicate/cycle checks keep their documented raw-string
// semantics.
func (s *RedirectService) AddRule(ctx context.Context, source, destination string, isRegex bool) (*AddResult, error) {
	ctx, span := s.tracer.Start(ctx, "AddRule")
	defer span.End()

	snapshot, err := s.rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule snapshot: %w", err)
	}

	outcome := s.validator.Validate(source, destination, snapshot)
	s.recordOutcome(ctx, outcome)

	if !outcome.Admitted() {
		s.logger.Info("Rejected rule", "reason", outcome.Reason, "check", outcome.Check)
		return &AddResult{Outcome: outcome}, nil
	}

	stored, err := s.rules.Append(ctx, engine.Rule{
		Source:      strings.TrimSpace(source),
		Destination: strings.TrimSpace(destination),
		IsRegex:     isRegex,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store rule: %w", err)
	}

	s.announcer.Announce(announce.KindAdded, stored.Source)
	s.logger.Info("Added rule",
		"source", stored.Source,
		"destination", stored.Destination,
		"position", stored.Position,
		"advisory", outcome.Status == engine.StatusAdvisory)
	return &AddResult{Outcome: outcome, Rule: stored}, nil
}

// DeleteRule resolves the rule position out of a UI element identifier and
// removes that rule. An identifier with no digit run aborts with
// ErrBadElementID before any storage access.
func (s *RedirectService) DeleteRule(ctx context.Context, elementID string) (*repository.RedirectRule, error) {
	ctx, span := s.tracer.Start(ctx, "DeleteRule")
	defer span.End()

	position, ok := engine.ParseRuleIndex(elementID)
	if !ok {
		metrics.IncRuleDeletion("bad_element_id")
		s.logger.Warn("Delete aborted, element id has no index", "element_id", elementID)
		return nil, ErrBadElementID
	}

	removed, err := s.rules.DeleteAt(ctx, position)
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			metrics.IncRuleDeletion("not_found")
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete rule: %w", err)
	}

	metrics.IncRuleDeletion("deleted")
	s.incrementStat(ctx, repository.StatDeleted)
	s.announcer.Announce(announce.KindRemoved, removed.Source)
	s.logger.Info("Deleted rule", "source", removed.Source, "position", position)
	return removed, nil
}

func (s *RedirectService) ListRules(ctx context.Context) (engine.RuleSet, error) {
	ctx, span := s.tracer.Start(ctx, "ListRules")
	defer span.End()
	return s.rules.List(ctx)
}

func (s *RedirectService) TodayStats(ctx context.Context) (*repository.RuleStats, error) {
	ctx, span := s.tracer.Start(ctx, "TodayStats")
	defer span.End()
	return s.stats.GetTodayStats(ctx)
}

func (s *RedirectService) recordOutcome(ctx context.Context, outcome engine.Outcome) {
	metrics.IncValidationOutcome(string(outcome.Status), string(outcome.Reason))

	var field string
	switch outcome.Status {
	case engine.StatusAccepted:
		field = repository.StatAccepted
	case engine.StatusAdvisory:
		field = repository.StatAdvisories
	case engine.StatusRejected:
		switch outcome.Reason {
		case engine.ReasonEmpty:
			field = repository.StatRejectedEmpty
		case engine.ReasonDuplicateSource:
			field = repository.StatRejectedDuplicate
		case engine.ReasonCycle:
			field = repository.StatRejectedCycle
		}
	}
	if field != "" {
		s.incrementStat(ctx, field)
	}
}

// incrementStat is best-effort: a stats failure must never change an
// add/delete result.
func (s *RedirectService) incrementStat(ctx context.Context, field string) {
	if err := s.stats.IncrementStat(ctx, field); err != nil {
		s.logger.Error("Failed to increment stat", "field", field, "error", err)
	}
}
