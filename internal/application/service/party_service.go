package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/numbering"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds how often a create is retried after losing a race
// for a party code.
const maxCodeAttempts = 3

// PartyService handles party-related operations
type PartyService struct {
	partyRepo   repository.PartyRepository
	counterRepo repository.CounterRepository
}

// NewPartyService creates a new party service
func NewPartyService(partyRepo repository.PartyRepository, counterRepo repository.CounterRepository) *PartyService {
	return &PartyService{
		partyRepo:   partyRepo,
		counterRepo: counterRepo,
	}
}

// CreatePartyInput represents the create party input
type CreatePartyInput struct {
	Name    string
	Phone   string
	Address *string
	Email   *string
}

// CreateParty creates a new party and assigns it the next party code
func (s *PartyService) CreateParty(ctx context.Context, input *CreatePartyInput) (*entity.Party, error) {
	name, phone, err := requireNameAndPhone(input.Name, input.Phone)
	if err != nil {
		return nil, err
	}

	party := &entity.Party{
		Name:    name,
		Phone:   phone,
		Address: trimOptional(input.Address),
		Email:   normalizeEmail(input.Email),
	}

	for attempt := 1; ; attempt++ {
		code, err := s.nextCode(ctx)
		if err != nil {
			return nil, apperror.FromStore("Party", err)
		}
		party.Code = code

		err = s.partyRepo.Create(ctx, party)
		if err == nil {
			return party, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == maxCodeAttempts {
			return nil, apperror.FromStore("Party", err)
		}
	}
}

// nextCode hands out the next party code. The first use of the counter
// starts after the highest code already stored, deleted parties included.
func (s *PartyService) nextCode(ctx context.Context) (string, error) {
	seq := numbering.PartyCodes
	n, err := s.counterRepo.Next(ctx, seq.Name(), func(ctx context.Context) (int64, error) {
		codes, err := s.partyRepo.Codes(ctx, seq.Prefix)
		if err != nil {
			return 0, err
		}
		return seq.Last(codes), nil
	})
	if err != nil {
		return "", err
	}
	return seq.Format(n), nil
}

// GetParty retrieves a party by ID
func (s *PartyService) GetParty(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.FromStore("Party", err)
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}
	return party, nil
}

// ListParties lists parties, newest first
func (s *PartyService) ListParties(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Party], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	parties, total, err := s.partyRepo.List(ctx, params, search)
	if err != nil {
		return nil, apperror.FromStore("Party", err)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(parties, pag), nil
}

// UpdatePartyInput represents the update party input. The party code is
// never changed.
type UpdatePartyInput struct {
	ID      uuid.UUID
	Name    string
	Phone   string
	Address *string
	Email   *string
}

// UpdateParty updates a party
func (s *PartyService) UpdateParty(ctx context.Context, input *UpdatePartyInput) (*entity.Party, error) {
	name, phone, err := requireNameAndPhone(input.Name, input.Phone)
	if err != nil {
		return nil, err
	}

	party, err := s.GetParty(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	party.Name = name
	party.Phone = phone
	if input.Address != nil {
		party.Address = trimOptional(input.Address)
	}
	if input.Email != nil {
		party.Email = normalizeEmail(input.Email)
	}

	if err := s.partyRepo.Update(ctx, party); err != nil {
		return nil, apperror.FromStore("Party", err)
	}

	return party, nil
}

// DeleteParty deletes a party. Quotations addressed to it are kept.
func (s *PartyService) DeleteParty(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetParty(ctx, id); err != nil {
		return err
	}
	return apperror.FromStore("Party", s.partyRepo.Delete(ctx, id))
}

func requireNameAndPhone(name, phone string) (string, string, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	var fieldErrors []apperror.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if phone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "Phone is required"})
	}
	if len(fieldErrors) > 0 {
		return "", "", apperror.NewValidationError(fieldErrors)
	}
	return name, phone, nil
}

// trimOptional trims s and maps blank values to nil
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeEmail(email *string) *string {
	email = trimOptional(email)
	if email == nil {
		return nil
	}
	v := strings.ToLower(*email)
	return &v
}
