package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carepulse/carepulse/internal/platform/messaging"
	"github.com/carepulse/carepulse/internal/platform/refresh"
)

// adminPath is the refresh channel the admin dashboard long-polls on.
const adminPath = "/admin"

// Service owns the appointment lifecycle and the admin aggregate view.
// Notification dispatch and refresh signaling are best-effort side effects of
// the two transitions; the store update alone decides success.
type Service struct {
	appointments Repository
	patients     PatientSource
	sender       messaging.Sender
	refresher    refresh.Notifier
	logger       zerolog.Logger
}

func NewService(appointments Repository, patients PatientSource, sender messaging.Sender, refresher refresh.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		sender:       sender,
		refresher:    refresher,
		logger:       logger.With().Str("component", "appointment").Logger(),
	}
}

// Create stores a new appointment request. Status is forced to pending
// regardless of what the caller submitted.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.UserID == uuid.Nil {
		return errors.New("user_id is required")
	}
	if a.PrimaryPhysician == "" {
		return errors.New("primary_physician is required")
	}
	if a.Schedule.IsZero() {
		return errors.New("schedule is required")
	}
	a.Status = StatusPending
	return s.appointments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// ListRecent returns every appointment newest-first, each enriched with its
// patient record, plus per-status counts. Patient lookups fan out
// concurrently; a failed lookup leaves that row's Patient nil and never fails
// the listing. Rows keep the store's order no matter which lookup finishes
// first.
func (s *Service) ListRecent(ctx context.Context) (*AggregatedList, error) {
	appts, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	list := &AggregatedList{
		TotalCount:   len(appts),
		Appointments: make([]*Row, len(appts)),
	}
	for _, a := range appts {
		switch a.Status {
		case StatusScheduled:
			list.ScheduledCount++
		case StatusPending:
			list.PendingCount++
		case StatusCancelled:
			list.CancelledCount++
		}
	}

	var wg sync.WaitGroup
	for i, a := range appts {
		wg.Add(1)
		go func(i int, a *Appointment) {
			defer wg.Done()
			p, err := s.patients.GetByUserID(ctx, a.UserID)
			if err != nil {
				s.logger.Warn().Err(err).
					Stringer("appointment_id", a.ID).
					Stringer("user_id", a.UserID).
					Msg("patient lookup failed, returning row without patient")
				p = nil
			}
			list.Appointments[i] = &Row{Appointment: *a, Patient: p}
		}(i, a)
	}
	wg.Wait()

	return list, nil
}

// Schedule confirms a pending appointment. The store update is authoritative:
// if it fails nothing else runs. On success the patient is notified
// best-effort and the admin view is invalidated exactly once.
func (s *Service) Schedule(ctx context.Context, id uuid.UUID, schedule time.Time, primaryPhysician string) (*Appointment, error) {
	status := StatusScheduled
	fields := UpdateFields{Status: &status}
	if !schedule.IsZero() {
		fields.Schedule = &schedule
	}
	if primaryPhysician != "" {
		fields.PrimaryPhysician = &primaryPhysician
	}

	updated, err := s.appointments.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated, func(name string) string {
		return ConfirmationMessage(name, updated.PrimaryPhysician, updated.Schedule)
	})
	s.refresher.Invalidate(adminPath)
	return updated, nil
}

// Cancel cancels an appointment, recording the reason. An empty reason is
// stored as given but the notification text falls back to "Not specified".
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Appointment, error) {
	status := StatusCancelled
	updated, err := s.appointments.Update(ctx, id, UpdateFields{
		Status:             &status,
		CancellationReason: &reason,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated, func(name string) string {
		return CancellationMessage(name, updated.PrimaryPhysician, reason)
	})
	s.refresher.Invalidate(adminPath)
	return updated, nil
}

// notify resolves the appointment's patient and dispatches the rendered
// message. Every failure mode, from lookup to gateway, is logged and
// swallowed.
func (s *Service) notify(ctx context.Context, a *Appointment, render func(patientName string) string) {
	p, err := s.patients.GetByUserID(ctx, a.UserID)
	if err != nil || p == nil {
		s.logger.Warn().Err(err).
			Stringer("appointment_id", a.ID).
			Stringer("user_id", a.UserID).
			Msg("patient lookup failed, skipping notification")
		return
	}

	if ok := s.sender.Send(ctx, p.Phone, render(p.Name)); !ok {
		s.logger.Warn().
			Stringer("appointment_id", a.ID).
			Msg("notification dispatch failed")
		return
	}
	s.logger.Info().
		Stringer("appointment_id", a.ID).
		Msg("notification dispatched")
}
