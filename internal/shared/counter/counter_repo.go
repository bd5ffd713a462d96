package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const TypeEmployeeID = "employee_id"

// Counter is one monotonically increasing sequence per counter type.
type Counter struct {
	CounterType string `gorm:"column:counter_type;type:varchar(50);primaryKey"`
	LastValue   int64  `gorm:"column:last_value;not null;default:0"`
}

func (Counter) TableName() string {
	return "counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue increments the sequence with a row lock so two concurrent
// callers never receive the same value.
func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := Counter{CounterType: counterType}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var row Counter
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "counter_type = ?", counterType).Error; err != nil {
			return err
		}

		row.LastValue++
		if err := tx.Model(&Counter{}).
			Where("counter_type = ?", counterType).
			Update("last_value", row.LastValue).Error; err != nil {
			return err
		}
		next = row.LastValue
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("next %s counter: %w", counterType, err)
	}
	return next, nil
}
