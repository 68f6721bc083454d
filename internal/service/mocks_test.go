package service

import (
	"context"

	"redirect-manager/internal/announce"
	"redirect-manager/internal/engine"
	"redirect-manager/internal/repository"
)

type MockRuleRepository struct {
	rules engine.RuleSet
	err   error

	ListFunc     func(ctx context.Context) (engine.RuleSet, error)
	AppendFunc   func(ctx context.Context, rule engine.Rule) (*repository.RedirectRule, error)
	DeleteAtFunc func(ctx context.Context, position int) (*repository.RedirectRule, error)
	CountFunc    func(ctx context.Context) (int64, error)

	appended []engine.Rule
	deleted  []int
}

func (m *MockRuleRepository) List(ctx context.Context) (engine.RuleSet, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.rules, nil
}

func (m *MockRuleRepository) Append(ctx context.Context, rule engine.Rule) (*repository.RedirectRule, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, rule)
	}
	if m.err != nil {
		return nil, m.err
	}
	m.appended = append(m.appended, rule)
	return &repository.RedirectRule{
		Position:    len(m.rules) + len(m.appended) - 1,
		Source:      rule.Source,
		Destination: rule.Destination,
		IsRegex:     rule.IsRegex,
	}, nil
}

func (m *MockRuleRepository) DeleteAt(ctx context.Context, position int) (*repository.RedirectRule, error) {
	if m.DeleteAtFunc != nil {
		return m.DeleteAtFunc(ctx, position)
	}
	if position < 0 || position >= len(m.rules) {
		return nil, repository.ErrRuleNotFound
	}
	m.deleted = append(m.deleted, position)
	r := m.rules[position]
	return &repository.RedirectRule{
		Position:    position,
		Source:      r.Source,
		Destination: r.Destination,
		IsRegex:     r.IsRegex,
	}, nil
}

func (m *MockRuleRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return int64(len(m.rules)), nil
}

type MockStatsRepository struct {
	counts map[string]int
	err    error
}

func (m *MockStatsRepository) IncrementStat(_ context.Context, field string) error {
	if m.err != nil {
		return m.err
	}
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[field]++
	return nil
}

func (m *MockStatsRepository) GetTodayStats(_ context.Context) (*repository.RuleStats, error) {
	return &repository.RuleStats{}, m.err
}

func (m *MockStatsRepository) GetTotalStats(_ context.Context) (*repository.RuleStats, error) {
	return &repository.RuleStats{}, m.err
}

type announced struct {
	kind   announce.Kind
	source string
}

type MockAnnouncer struct {
	events []announced
}

func (m *MockAnnouncer) Announce(kind announce.Kind, source string) {
	m.events = append(m.events, announced{kind: kind, source: source})
}
