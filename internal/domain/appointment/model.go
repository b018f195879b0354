package appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carepulse/carepulse/internal/domain/patient"
)

// Appointment lifecycle states. An appointment is created pending and moves to
// scheduled or cancelled; neither transition back to pending is exposed.
const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// Appointment maps to the appointments table.
type Appointment struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	UserID             uuid.UUID `db:"user_id" json:"user_id"`
	PrimaryPhysician   string    `db:"primary_physician" json:"primary_physician"`
	Schedule           time.Time `db:"schedule" json:"schedule"`
	Status             string    `db:"status" json:"status"`
	Reason             *string   `db:"reason" json:"reason,omitempty"`
	Note               *string   `db:"note" json:"note,omitempty"`
	CancellationReason *string   `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Row is one appointment enriched with its resolved patient record. Patient is
// nil when the lookup failed or matched nothing.
type Row struct {
	Appointment
	Patient *patient.Patient `json:"patient"`
}

// AggregatedList is the derived admin view: per-status counts plus the
// patient-enriched rows in store order (created_at descending). Appointments
// with an unrecognized status count toward TotalCount only.
type AggregatedList struct {
	TotalCount     int    `json:"total_count"`
	ScheduledCount int    `json:"scheduled_count"`
	PendingCount   int    `json:"pending_count"`
	CancelledCount int    `json:"cancelled_count"`
	Appointments   []*Row `json:"appointments"`
}

const (
	messageDateLayout = "January 2, 2006"
	messageTimeLayout = "3:04 PM"
)

func greeting(patientName string) string {
	if patientName == "" {
		return "Hi"
	}
	return "Hi " + patientName
}

// ConfirmationMessage renders the text sent after a schedule transition.
func ConfirmationMessage(patientName, physician string, schedule time.Time) string {
	return fmt.Sprintf("%s, your appointment with Dr. %s has been scheduled for %s at %s.",
		greeting(patientName), physician,
		schedule.Format(messageDateLayout), schedule.Format(messageTimeLayout))
}

// CancellationMessage renders the text sent after a cancel transition. An
// empty reason falls back to "Not specified".
func CancellationMessage(patientName, physician, reason string) string {
	if reason == "" {
		reason = "Not specified"
	}
	return fmt.Sprintf("%s, your appointment with Dr. %s has been cancelled. Reason: %s",
		greeting(patientName), physician, reason)
}
