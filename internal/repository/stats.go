package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	StatAccepted          = "accepted"
	StatAdvisories        = "advisories"
	StatRejectedEmpty     = "rejected_empty"
	StatRejectedDuplicate = "rejected_duplicate"
	StatRejectedCycle     = "rejected_cycle"
	StatDeleted           = "deleted"
)

type StatsRepository interface {
	IncrementStat(ctx context.Context, field string) error
	GetTodayStats(ctx context.Context) (*RuleStats, error)
	GetTotalStats(ctx context.Context) (*RuleStats, error)
}

type PostgresStatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) IncrementStat(ctx context.Context, field string) error {
	slog.Debug("Incrementing rule stat", "field", field)
	switch field {
	case StatAccepted, StatAdvisories, StatRejectedEmpty,
		StatRejectedDuplicate, StatRejectedCycle, StatDeleted:
	default:
		return fmt.Errorf("unknown stat field: %s", field)
	}
	now := time.Now().Truncate(24 * time.Hour)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			field: clause.Expr{SQL: "rule_stats." + field + " + 1"},
		}),
	}).Create(&RuleStats{
		Date: now,
		Accepted: func() int64 {
			if field == StatAccepted {
				return 1
			}
			return 0
		}(),
		Advisories: func() int64 {
			if field == StatAdvisories {
				return 1
			}
			return 0
		}(),
		RejectedEmpty: func() int64 {
			if field == StatRejectedEmpty {
				return 1
			}
			return 0
		}(),
		RejectedDuplicate: func() int64 {
			if field == StatRejectedDuplicate {
				return 1
			}
			return 0
		}(),
		RejectedCycle: func() int64 {
			if field == StatRejectedCycle {
				return 1
			}
			return 0
		}(),
		Deleted: func() int64 {
			if field == StatDeleted {
				return 1
			}
			return 0
		}(),
	}).Error
}

func (r *PostgresStatsRepository) GetTodayStats(ctx context.Context) (*RuleStats, error) {
	today := time.Now().Truncate(24 * time.Hour)
	var stats RuleStats
	err := r.db.WithContext(ctx).First(&stats, "date = ?", today).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &RuleStats{Date: today}, nil
		}
		return nil, fmt.Errorf("failed to get today's stats: %w", err)
	}
	return &stats, nil
}

func (r *PostgresStatsRepository) GetTotalStats(ctx context.Context) (*RuleStats, error) {
	var stats RuleStats
	err := r.db.WithContext(ctx).Model(&RuleStats{}).
		Select("SUM(accepted) as accepted, SUM(advisories) as advisories, SUM(rejected_empty) as rejected_empty, SUM(rejected_duplicate) as rejected_duplicate, SUM(rejected_cycle) as rejected_cycle, SUM(deleted) as deleted").
		First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &RuleStats{}, nil
		}
		return nil, fmt.Errorf("failed to get total stats: %w", err)
	}
	return &stats, nil
}
