package booking

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) Update(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) GetByReference(ctx context.Context, ref string) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).Where("booking_reference = ?", ref).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]Booking, error) {
	var out []Booking
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("scheduled_date DESC, scheduled_time DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *repository) ListByService(ctx context.Context, serviceID string) ([]Booking, error) {
	var out []Booking
	err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("scheduled_date DESC, scheduled_time DESC").
		Find(&out).Error
	return out, err
}

// isUniqueViolation recognizes a uniqueness conflict from either backend:
// Postgres raises pgconn code 23505, sqlite goes through gorm's translated
// ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
