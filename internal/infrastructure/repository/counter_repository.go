package repository

import (
	"context"

	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

// Next increments the named counter and returns the new value. A counter
// that does not exist yet starts from whatever seed reports as the last
// issued value.
func (r *counterRepository) Next(ctx context.Context, name string, seed domainRepo.SeedFunc) (int64, error) {
	if _, ok, err := r.Current(ctx, name); err != nil {
		return 0, err
	} else if !ok {
		var start int64
		if seed != nil {
			if start, err = seed(ctx); err != nil {
				return 0, err
			}
		}
		// A concurrent writer may have created the row first; keep theirs.
		err = r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.Counter{Name: name, Value: start}).Error
		if err != nil {
			return 0, err
		}
	}

	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Counter{}).
			Where("name = ?", name).
			UpdateColumn("value", gorm.Expr("value + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		var counter entity.Counter
		if err := tx.First(&counter, "name = ?", name).Error; err != nil {
			return err
		}
		next = counter.Value
		return nil
	})
	return next, err
}

// Current reports the last value handed out by the named counter. ok is
// false for a counter that was never used.
func (r *counterRepository) Current(ctx context.Context, name string) (int64, bool, error) {
	var counter entity.Counter
	res := r.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&counter)
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}
	return counter.Value, true, nil
}
