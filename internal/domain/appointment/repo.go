package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/carepulse/carepulse/internal/domain/patient"
)

var (
	// ErrNotFound is returned when an appointment does not exist.
	ErrNotFound = errors.New("appointment not found")
	// ErrUpdateFailed is returned when an update targets an unknown appointment.
	ErrUpdateFailed = errors.New("appointment update failed")
)

// UpdateFields is the partial update merged into an appointment. Nil fields
// are left untouched.
type UpdateFields struct {
	PrimaryPhysician   *string
	Schedule           *time.Time
	Status             *string
	CancellationReason *string
	Note               *string
}

// Repository is the record-store capability this domain depends on.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Appointment, error)
	// List returns all appointments ordered by created_at descending.
	List(ctx context.Context) ([]*Appointment, error)
}

// PatientSource resolves the patient record behind an appointment's user, for
// list enrichment and notification formatting.
type PatientSource interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*patient.Patient, error)
}
