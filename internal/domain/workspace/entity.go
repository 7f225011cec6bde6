package workspace

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("workspace name cannot be empty")
	ErrNonPositiveRate = errors.New("hourly rate must be positive")
)

// Workspace is a bookable unit: a desk, a meeting room, a phone booth.
type Workspace struct {
	id              uuid.UUID
	name            string
	hourlyRateCents int64
	capacity        int32
}

func NewWorkspace(id uuid.UUID, name string, hourlyRateCents int64, capacity int32) (*Workspace, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if hourlyRateCents <= 0 {
		return nil, ErrNonPositiveRate
	}
	return &Workspace{
		id:              id,
		name:            name,
		hourlyRateCents: hourlyRateCents,
		capacity:        capacity,
	}, nil
}

func (w *Workspace) ID() uuid.UUID          { return w.id }
func (w *Workspace) Name() string           { return w.name }
func (w *Workspace) HourlyRateCents() int64 { return w.hourlyRateCents }
func (w *Workspace) Capacity() int32        { return w.capacity }
