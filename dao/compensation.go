package dao

import (
	"Freshgo/models"
	"context"

	"gorm.io/gorm"
)

type Compensation struct {
	Repo[models.CompensationTask]
}

func NewCompensation(db *gorm.DB) *Compensation {
	return &Compensation{
		Repo: NewRepo[models.CompensationTask](db),
	}
}

func (c *Compensation) ListPending(ctx context.Context, limit int) ([]*models.CompensationTask, error) {
	var tasks []*models.CompensationTask
	err := c.Db.WithContext(ctx).
		Where("status = ?", models.CompensationPending).
		Order("created_at asc").Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func (c *Compensation) MarkDone(ctx context.Context, id string) error {
	return c.Db.WithContext(ctx).Model(&models.CompensationTask{}).
		Where("id = ?", id).
		Update("status", models.CompensationDone).Error
}
