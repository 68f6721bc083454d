package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"redirect-manager/internal/engine"
)

var ErrRuleNotFound = errors.New("rule not found")

type RuleRepository interface {
	// List returns the rules ordered by position, as the snapshot the
	// validator reads.
	List(ctx context.Context) (engine.RuleSet, error)
	// Append stores the rule at the end of the list.
	Append(ctx context.Context, rule engine.Rule) (*RedirectRule, error)
	// DeleteAt removes the rule at the given list position and closes the
	// gap. Returns ErrRuleNotFound for a position outside the list.
	DeleteAt(ctx context.Context, position int) (*RedirectRule, error)
	Count(ctx context.Context) (int64, error)
}

type CachedRuleRepository struct {
	db          *gorm.DB
	enableCache bool
	cacheTTL    time.Duration

	mu        sync.Mutex
	cached    engine.RuleSet
	expiresAt time.Time
}

func NewRuleRepository(db *gorm.DB, enableCache bool, cacheTTL time.Duration) RuleRepository {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CachedRuleRepository{
		db:          db,
		enableCache: enableCache,
		cacheTTL:    cacheTTL,
	}
}

func (r *CachedRuleRepository) List(ctx context.Context) (engine.RuleSet, error) {
	if r.enableCache {
		r.mu.Lock()
		if r.cached != nil && time.Now().Before(r.expiresAt) {
			set := r.cached
			r.mu.Unlock()
			return set, nil
		}
		r.mu.Unlock()
	}

	var rows []RedirectRule
	if err := r.db.WithContext(ctx).Order("position asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	set := make(engine.RuleSet, 0, len(rows))
	for _, row := range rows {
		set = append(set, engine.Rule{
			Source:      row.Source,
			Destination: row.Destination,
			IsRegex:     row.IsRegex,
		})
	}

	if r.enableCache {
		r.mu.Lock()
		r.cached = set
		r.expiresAt = time.Now().Add(r.cacheTTL)
		r.mu.Unlock()
	}
	return set, nil
}

func (r *CachedRuleRepository) Append(ctx context.Context, rule engine.Rule) (*RedirectRule, error) {
	var stored RedirectRule
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&RedirectRule{}).Count(&count).Error; err != nil {
			return err
		}
		stored = RedirectRule{
			Position:    int(count),
			Source:      rule.Source,
			Destination: rule.Destination,
			IsRegex:     rule.IsRegex,
		}
		return tx.Create(&stored).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append rule: %w", err)
	}
	r.invalidate()
	return &stored, nil
}

func (r *CachedRuleRepository) DeleteAt(ctx context.Context, position int) (*RedirectRule, error) {
	var removed RedirectRule
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, "position = ?", position).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRuleNotFound
			}
			return err
		}
		if err := tx.Delete(&RedirectRule{}, removed.ID).Error; err != nil {
			return err
		}
		// Keep positions dense so UI indexes stay valid.
		return tx.Model(&RedirectRule{}).
			Where("position > ?", position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to delete rule at %d: %w", position, err)
	}
	r.invalidate()
	return &removed, nil
}

func (r *CachedRuleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RedirectRule{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}
	return count, nil
}

func (r *CachedRuleRepository) invalidate() {
	if !r.enableCache {
		return
	}
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}
