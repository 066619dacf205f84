package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/model"
)

// UserRepository persists journal users. The journal is single-owner for
// now, so the only writer is the startup seeding path.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns the user or (nil, nil) when the id is unknown.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureOwner makes sure the configured owner row exists, creating it on
// first boot. Returns the stored user either way.
func (r *UserRepository) EnsureOwner(ctx context.Context, id, email string) (*model.User, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	owner := model.User{ID: id, Email: email}
	if err := r.db.WithContext(ctx).Create(&owner).Error; err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":    "UserRepository",
		"user_id": id,
	}).Info("Seeded owner user")

	return &owner, nil
}
