package dao

import (
	"Freshgo/models"
	"context"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.Users]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.Users](db),
	}
}

func (u *Users) FindById(ctx context.Context, id int64) (*models.Users, error) {
	return u.Repo.FindById(ctx, id)
}
