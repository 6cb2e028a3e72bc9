package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/events"
	"github.com/huevos-organicos/backend/internal/repository"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

var errLeadNotFound = apperrors.NewNotFound("Interesado no encontrado")

// LeadInput carries a contact-form submission.
type LeadInput struct {
	Name    string
	Email   string
	Phone   string
	Subject *string
	Message *string
}

// LeadService stores leads and announces them.
type LeadService struct {
	leads      repository.LeadRepository
	dispatcher events.Dispatcher
}

// NewLeadService builds the service.
func NewLeadService(leads repository.LeadRepository, dispatcher events.Dispatcher) *LeadService {
	return &LeadService{leads: leads, dispatcher: dispatcher}
}

// List returns every lead, newest first.
func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leads, nil
}

// Get returns a lead by id.
func (s *LeadService) Get(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, errLeadNotFound)
	}
	return lead, nil
}

// Create stores the lead and publishes EventLeadCreated.
func (s *LeadService) Create(ctx context.Context, input LeadInput) (*domain.Lead, error) {
	lead := &domain.Lead{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventLeadCreated,
			Timestamp: time.Now(),
			Payload: events.LeadCreatedPayload{
				LeadID:  lead.ID,
				Name:    lead.Name,
				Email:   lead.Email,
				Phone:   lead.Phone,
				Subject: lead.Subject,
			},
		})
	}
	return lead, nil
}
