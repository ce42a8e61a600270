package shared

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

// UnitOfWork scopes every mutating flow: the conflict guard, the status
// write and the notification job all commit or roll back together.
type UnitOfWork interface {
	// Within: full transaction for write operations with serialization retry
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}

type BookingRepository interface {
	// LockProperty takes the row lock serializing concurrent booking
	// attempts for one property; call before OccupiedStays.
	LockProperty(ctx context.Context, propertyID uuid.UUID) error
	// OccupiedStays returns the date ranges of pending/confirmed bookings
	// for the property, excluding the given booking ID (uuid.Nil on create).
	OccupiedStays(ctx context.Context, propertyID, exclude uuid.UUID) ([]booking.StayRange, error)
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
