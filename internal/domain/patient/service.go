package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	users    UserRepository
	patients PatientRepository
}

func NewService(users UserRepository, patients PatientRepository) *Service {
	return &Service{users: users, patients: patients}
}

// CreateUser creates an intake user. Creation is idempotent on email: when the
// address is already registered the existing user is fetched and returned
// instead of surfacing a conflict.
func (s *Service) CreateUser(ctx context.Context, u *User) (*User, error) {
	if u.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if u.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if u.Phone == "" {
		return nil, fmt.Errorf("phone is required")
	}

	err := s.users.CreateUser(ctx, u)
	if errors.Is(err, ErrEmailTaken) {
		return s.users.GetUserByEmail(ctx, u.Email)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetUserByID(ctx, id)
}

// ListUsers returns a page of intake users for the admin dashboard.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.ListUsers(ctx, limit, offset)
}

// Register stores the full patient intake record for a user.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !p.PrivacyConsent {
		return fmt.Errorf("privacy consent is required")
	}
	return s.patients.CreatePatient(ctx, p)
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	return s.patients.GetByUserID(ctx, userID)
}
