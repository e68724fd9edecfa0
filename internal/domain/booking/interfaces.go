package booking

import (
	"context"

	"ugandaserve/internal/domain/catalog"
)

// Repository defines the persistence boundary for bookings. The service
// hands it fully derived entities; uniqueness of booking_reference is
// enforced here and surfaced as a unique-violation error.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByReference(ctx context.Context, ref string) (*Booking, error)
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]Booking, error)
	ListByService(ctx context.Context, serviceID string) ([]Booking, error)
}

// ServiceCatalog resolves the service being booked.
type ServiceCatalog interface {
	GetByID(ctx context.Context, id string) (*catalog.Listing, error)
}
