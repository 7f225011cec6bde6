package shared

import (
	"context"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/domain/order"
	"coworkhub/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Orders() OrderRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// ActiveBookingByUser returns the user's currently checked-in
	// booking, or nil when there is none.
	ActiveBookingByUser(ctx context.Context, userID uuid.UUID) (*BookingSnapshot, error)
	WorkspaceByID(ctx context.Context, id uuid.UUID) (*WorkspaceSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	MenuItemByID(ctx context.Context, id uuid.UUID) (*MenuItemSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// CheckIn is conditional on checkInTime still being null so only
	// one of two racing check-in calls succeeds.
	CheckIn(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) (int64, error)
	// CheckOut is conditional on checkOutTime still being null.
	CheckOut(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time, actualHours float64, finalChargeCents int64) (int64, error)
	// Cancel is conditional on the booking not having started.
	Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	NFTHolder    bool
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, params CreateUserParams) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
