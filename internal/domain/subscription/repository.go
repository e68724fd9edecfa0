package subscription

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Subscription, error) {
	var s Subscription
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID string) (*Subscription, error) {
	var s Subscription
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListExpiring(ctx context.Context, before time.Time) ([]Subscription, error) {
	var out []Subscription
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", StatusActive, before).
		Find(&out).Error
	return out, err
}
