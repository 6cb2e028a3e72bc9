package service

import (
	"context"
	"errors"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/persistence"
	"github.com/huevos-organicos/backend/internal/repository"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

var (
	errClientNotFound = apperrors.NewNotFound("Cliente no encontrado")
	errClientEmail    = apperrors.NewConflict("El email ya está registrado")
)

// ClientInput carries the writable fields of a client.
type ClientInput struct {
	CompanyName  string
	BusinessType string
	ContactName  string
	Email        string
	Phone        *string
	Address      *string
	TaxID        *string
	ClientType   string
	CreditLimit  float64
	Status       domain.Status
}

// ClientService manages wholesale clients.
type ClientService struct {
	clients repository.ClientRepository
	stats   *StatsService
}

// NewClientService builds the service. stats may be nil.
func NewClientService(clients repository.ClientRepository, stats *StatsService) *ClientService {
	return &ClientService{clients: clients, stats: stats}
}

// List returns every client, newest first.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}

// Get returns a client regardless of status.
func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, errClientNotFound)
	}
	return client, nil
}

// Create stores a new client.
func (s *ClientService) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	client := input.toClient()
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, mapClientWriteError(err)
	}
	s.invalidateStats(ctx)
	return client, nil
}

// Update replaces every writable field of the client.
func (s *ClientService) Update(ctx context.Context, id int64, input ClientInput) (*domain.Client, error) {
	client := input.toClient()
	client.ID = id
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, mapClientWriteError(err)
	}
	s.invalidateStats(ctx)
	return client, nil
}

// SetStatus soft-deletes or reactivates a client.
func (s *ClientService) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	if err := s.clients.SetStatus(ctx, id, status); err != nil {
		return mapNotFound(err, errClientNotFound)
	}
	s.invalidateStats(ctx)
	return nil
}

// Stats summarizes active clients.
func (s *ClientService) Stats(ctx context.Context) (*domain.ClientStats, error) {
	if s.stats != nil {
		return s.stats.ClientStats(ctx)
	}
	stats, err := s.clients.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *ClientService) invalidateStats(ctx context.Context) {
	if s.stats != nil {
		s.stats.InvalidateClientStats(ctx)
	}
}

func (in ClientInput) toClient() *domain.Client {
	client := &domain.Client{
		CompanyName:  in.CompanyName,
		BusinessType: in.BusinessType,
		ContactName:  in.ContactName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		TaxID:        in.TaxID,
		ClientType:   in.ClientType,
		CreditLimit:  in.CreditLimit,
		Status:       in.Status,
	}
	if client.ClientType == "" {
		client.ClientType = domain.DefaultClientType
	}
	if client.Status == "" {
		client.Status = domain.StatusActive
	}
	return client
}

func mapClientWriteError(err error) error {
	switch {
	case errors.Is(err, persistence.ErrDuplicate):
		return errClientEmail
	case errors.Is(err, persistence.ErrNoRows):
		return errClientNotFound
	default:
		return apperrors.MapError(err)
	}
}
