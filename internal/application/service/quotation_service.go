package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/domain/numbering"
	"github.com/sangkips/quotedesk-api/internal/domain/pricing"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// QuotationService handles quotation-related operations
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	partyRepo     repository.PartyRepository
	counterRepo   repository.CounterRepository
	settings      config.QuotationConfig
	business      config.BusinessConfig
	now           func() time.Time
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	partyRepo repository.PartyRepository,
	counterRepo repository.CounterRepository,
	settings config.QuotationConfig,
	business config.BusinessConfig,
) *QuotationService {
	if settings.ValidityDays <= 0 {
		settings.ValidityDays = 30
	}
	return &QuotationService{
		quotationRepo: quotationRepo,
		partyRepo:     partyRepo,
		counterRepo:   counterRepo,
		settings:      settings,
		business:      business,
		now:           time.Now,
	}
}

// QuotationItemInput represents a line item input. A nil TaxPercentage
// takes the configured default rate.
type QuotationItemInput struct {
	Category      string
	Brand         string
	Model         string
	HSNSAC        string
	Warranty      string
	Quantity      int
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	TaxPercentage *decimal.Decimal
}

// CreateQuotationInput represents the input for creating a quotation
type CreateQuotationInput struct {
	PartyID         uuid.UUID
	Title           string
	Date            *time.Time
	ValidUntil      *time.Time
	BusinessDetails *entity.BusinessDetails
	TaxType         *enum.TaxType
	Notes           *string
	TermsConditions *string
	Status          *enum.QuotationStatus
	Items           []QuotationItemInput
}

// CreateQuotation numbers, titles and prices a new quotation
func (s *QuotationService) CreateQuotation(ctx context.Context, input *CreateQuotationInput) (*entity.Quotation, error) {
	if input.PartyID == uuid.Nil {
		return nil, apperror.NewFieldError("party_id", "Party is required")
	}

	items, err := s.buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	party, err := s.partyRepo.GetByID(ctx, input.PartyID)
	if err != nil {
		return nil, apperror.FromStore("Party", err)
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}

	now := s.now()

	title, err := s.resolveTitle(ctx, input.Title, party.Name+numbering.DefaultTitleSuffix)
	if err != nil {
		return nil, err
	}

	number, err := s.nextNumber(ctx, now)
	if err != nil {
		return nil, apperror.FromStore("Quotation", err)
	}

	date := now
	if input.Date != nil {
		date = *input.Date
	}
	validUntil := date.AddDate(0, 0, s.settings.ValidityDays)
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	}

	taxType := s.defaultTaxType()
	if input.TaxType != nil {
		taxType = *input.TaxType
	}

	status := enum.QuotationStatusDraft
	if input.Status != nil {
		status = *input.Status
	}

	quotation := &entity.Quotation{
		PartyID:         party.ID,
		QuotationNumber: number,
		Title:           title,
		Date:            date,
		ValidUntil:      validUntil,
		BusinessDetails: datatypes.NewJSONType(s.businessDetails(input.BusinessDetails)),
		TaxType:         taxType,
		Notes:           input.Notes,
		TermsConditions: input.TermsConditions,
		Status:          status,
		Items:           items,
	}
	applyTotals(quotation)

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, apperror.FromStore("Quotation", err)
	}

	return s.GetQuotation(ctx, quotation.ID)
}

// GetQuotation retrieves a quotation with its party and items
func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.FromStore("Quotation", err)
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// ListQuotationsInput represents the input for listing quotations
type ListQuotationsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	PartyID    *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListQuotations lists quotations with filtering
func (s *QuotationService) ListQuotations(ctx context.Context, input *ListQuotationsInput) (*pagination.PaginatedResult[entity.Quotation], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	params := &repository.QuotationFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		PartyID:    input.PartyID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	quotations, total, err := s.quotationRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.FromStore("Quotation", err)
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotations, pag), nil
}

// ListQuotationsByParty lists the quotations of one party, newest first.
// ref is either the party's id or its party code.
func (s *QuotationService) ListQuotationsByParty(ctx context.Context, ref string) ([]entity.Quotation, error) {
	ref = strings.TrimSpace(ref)
	partyID, err := uuid.Parse(ref)
	if err != nil {
		party, err := s.partyRepo.GetByCode(ctx, strings.ToUpper(ref))
		if err != nil {
			return nil, apperror.FromStore("Party", err)
		}
		if party == nil {
			return nil, apperror.NewNotFoundError("Party")
		}
		partyID = party.ID
	}

	quotations, err := s.quotationRepo.ListByParty(ctx, partyID)
	if err != nil {
		return nil, apperror.FromStore("Quotation", err)
	}
	return quotations, nil
}

// UpdateQuotationInput represents the input for updating a quotation. Nil
// fields are left unchanged; a nil Items keeps the stored items and totals.
type UpdateQuotationInput struct {
	ID              uuid.UUID
	PartyID         *uuid.UUID
	Title           *string
	Date            *time.Time
	ValidUntil      *time.Time
	BusinessDetails *entity.BusinessDetails
	TaxType         *enum.TaxType
	Notes           *string
	TermsConditions *string
	Status          *enum.QuotationStatus
	Items           []QuotationItemInput
}

// UpdateQuotation overwrites the given fields. Totals are recomputed only
// when the items are replaced; a new tax type applies from the next
// replacement of the items.
func (s *QuotationService) UpdateQuotation(ctx context.Context, input *UpdateQuotationInput) (*entity.Quotation, error) {
	quotation, err := s.GetQuotation(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	var items []entity.QuotationItem
	if input.Items != nil {
		if items, err = s.buildItems(input.Items); err != nil {
			return nil, err
		}
	}

	if input.PartyID != nil && *input.PartyID != quotation.PartyID {
		party, err := s.partyRepo.GetByID(ctx, *input.PartyID)
		if err != nil {
			return nil, apperror.FromStore("Party", err)
		}
		if party == nil {
			return nil, apperror.NewNotFoundError("Party")
		}
		quotation.PartyID = party.ID
		quotation.Party = party
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperror.NewFieldError("title", "Title cannot be empty")
		}
		if !strings.EqualFold(title, quotation.Title) {
			if err := s.ensureTitleFree(ctx, title); err != nil {
				return nil, err
			}
		}
		quotation.Title = title
	}

	if input.Date != nil {
		quotation.Date = *input.Date
	}
	if input.ValidUntil != nil {
		quotation.ValidUntil = *input.ValidUntil
	}
	if input.BusinessDetails != nil {
		quotation.BusinessDetails = datatypes.NewJSONType(s.businessDetails(input.BusinessDetails))
	}
	if input.Notes != nil {
		quotation.Notes = input.Notes
	}
	if input.TermsConditions != nil {
		quotation.TermsConditions = input.TermsConditions
	}

	if input.Status != nil {
		if !quotation.Status.ExpectedNext(*input.Status) {
			log.Printf("Quotation %s moved from %s to %s", quotation.ID, quotation.Status, *input.Status)
		}
		quotation.Status = *input.Status
	}

	if input.TaxType != nil {
		quotation.TaxType = *input.TaxType
	}

	reprice := input.Items != nil
	if reprice {
		quotation.Items = items
		applyTotals(quotation)
	}

	if err := s.quotationRepo.Update(ctx, quotation, reprice); err != nil {
		return nil, apperror.FromStore("Quotation", err)
	}

	return s.GetQuotation(ctx, quotation.ID)
}

// DeleteQuotation deletes a quotation. Its revisions are kept.
func (s *QuotationService) DeleteQuotation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetQuotation(ctx, id); err != nil {
		return err
	}
	return apperror.FromStore("Quotation", s.quotationRepo.Delete(ctx, id))
}

// RevisionInput holds the fields a revision may override
type RevisionInput struct {
	Title *string
	Notes *string
}

// CreateRevision copies the quotation identified by sourceID into a new
// draft that continues its revision chain.
func (s *QuotationService) CreateRevision(ctx context.Context, sourceID uuid.UUID, input *RevisionInput) (*entity.Quotation, error) {
	source, err := s.GetQuotation(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if input == nil {
		input = &RevisionInput{}
	}

	revision := numbering.NextRevision(source.RevisionNumber, source.QuotationNumber, source.Title)
	number := numbering.RevisionNumber(source.PartyID.String(), revision)

	var override string
	if input.Title != nil {
		override = *input.Title
	}
	title, err := s.resolveTitle(ctx, override, number)
	if err != nil {
		return nil, err
	}

	notes := source.Notes
	if input.Notes != nil {
		notes = input.Notes
	}

	items := make([]entity.QuotationItem, len(source.Items))
	for i, item := range source.Items {
		item.ID = uuid.Nil
		item.QuotationID = uuid.Nil
		items[i] = item
	}

	now := s.now()
	rootID := source.RootID()
	sourceRef := source.ID

	copied := &entity.Quotation{
		PartyID:         source.PartyID,
		QuotationNumber: number,
		Title:           title,
		Date:            now,
		ValidUntil:      now.AddDate(0, 0, s.settings.ValidityDays),
		BusinessDetails: source.BusinessDetails,
		TaxType:         source.TaxType,
		Subtotal:        source.Subtotal,
		TotalAmount:     source.TotalAmount,
		TotalPurchase:   source.TotalPurchase,
		TotalTax:        source.TotalTax,
		Notes:           notes,
		TermsConditions: source.TermsConditions,
		Status:          enum.QuotationStatusDraft,
		RevisionNumber:  revision,
		RevisionOf:      &sourceRef,
		RevisionRootID:  &rootID,
		Items:           items,
	}

	if err := s.quotationRepo.Create(ctx, copied); err != nil {
		return nil, apperror.FromStore("Quotation", err)
	}

	return s.GetQuotation(ctx, copied.ID)
}

// ListRevisions returns the whole revision set the quotation belongs to,
// ordered by revision number then date.
func (s *QuotationService) ListRevisions(ctx context.Context, id uuid.UUID) ([]entity.Quotation, error) {
	quotation, err := s.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}

	revisions, err := s.quotationRepo.ListRevisionSet(ctx, quotation.RootID())
	if err != nil {
		return nil, apperror.FromStore("Quotation", err)
	}
	return revisions, nil
}

// resolveTitle returns the requested title if it is free, or a
// disambiguated form of base when no title was requested.
func (s *QuotationService) resolveTitle(ctx context.Context, requested, base string) (string, error) {
	if title := strings.TrimSpace(requested); title != "" {
		if err := s.ensureTitleFree(ctx, title); err != nil {
			return "", err
		}
		return title, nil
	}

	existing, err := s.quotationRepo.TitlesLike(ctx, base)
	if err != nil {
		return "", apperror.FromStore("Quotation", err)
	}
	return numbering.Disambiguate(base, existing), nil
}

func (s *QuotationService) ensureTitleFree(ctx context.Context, title string) error {
	existing, err := s.quotationRepo.TitlesLike(ctx, title)
	if err != nil {
		return apperror.FromStore("Quotation", err)
	}
	for _, t := range existing {
		if strings.EqualFold(t, title) {
			return apperror.NewDuplicateKeyError("Quotation title", nil)
		}
	}
	return nil
}

// nextNumber hands out the next QT<yymm>-<seq> number for the month of at
func (s *QuotationService) nextNumber(ctx context.Context, at time.Time) (string, error) {
	seq := numbering.QuotationNumbers(at)
	n, err := s.counterRepo.Next(ctx, seq.Name(), func(ctx context.Context) (int64, error) {
		numbers, err := s.quotationRepo.NumbersLike(ctx, seq.Prefix)
		if err != nil {
			return 0, err
		}
		return seq.Last(numbers), nil
	})
	if err != nil {
		return "", err
	}
	return seq.Format(n), nil
}

func (s *QuotationService) buildItems(inputs []QuotationItemInput) ([]entity.QuotationItem, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewFieldError("items", "At least one item is required")
	}

	defaultRate := decimal.NewFromFloat(s.settings.DefaultTaxRate)

	var fieldErrors []apperror.FieldError
	items := make([]entity.QuotationItem, 0, len(inputs))
	for i, in := range inputs {
		field := fmt.Sprintf("items[%d]", i)
		item := entity.QuotationItem{
			Category:      strings.TrimSpace(in.Category),
			Brand:         strings.TrimSpace(in.Brand),
			Model:         strings.TrimSpace(in.Model),
			HSNSAC:        strings.TrimSpace(in.HSNSAC),
			Warranty:      strings.TrimSpace(in.Warranty),
			Quantity:      in.Quantity,
			PurchasePrice: in.PurchasePrice,
			SalePrice:     in.SalePrice,
			TaxPercentage: defaultRate,
		}
		if in.TaxPercentage != nil {
			item.TaxPercentage = *in.TaxPercentage
		}
		if item.HSNSAC == "" {
			item.HSNSAC = entity.DefaultHSNSAC
		}

		if item.Category == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".category", Message: "Category is required"})
		}
		if item.Brand == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".brand", Message: "Brand is required"})
		}
		if item.Model == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".model", Message: "Model is required"})
		}
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".quantity", Message: "Quantity must be at least 1"})
		}
		if item.PurchasePrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".purchase_price", Message: "Purchase price cannot be negative"})
		}
		if item.SalePrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".sale_price", Message: "Sale price cannot be negative"})
		}
		if item.TaxPercentage.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".tax_percentage", Message: "Tax percentage cannot be negative"})
		}
		items = append(items, item)
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	return items, nil
}

func (s *QuotationService) defaultTaxType() enum.TaxType {
	taxType, err := enum.ParseTaxType(s.settings.DefaultTaxType)
	if err != nil {
		return enum.TaxTypeInclusive
	}
	return taxType
}

// businessDetails fills blank fields of in from the configured business
func (s *QuotationService) businessDetails(in *entity.BusinessDetails) entity.BusinessDetails {
	out := entity.BusinessDetails{
		Name:    s.business.Name,
		Address: s.business.Address,
		Phone:   s.business.Phone,
		Email:   s.business.Email,
		GSTIN:   s.business.GSTIN,
		Logo:    s.business.Logo,
	}
	if in == nil {
		return out
	}
	for _, f := range []struct{ src, dst *string }{
		{&in.Name, &out.Name},
		{&in.Address, &out.Address},
		{&in.Phone, &out.Phone},
		{&in.Email, &out.Email},
		{&in.GSTIN, &out.GSTIN},
		{&in.Logo, &out.Logo},
	} {
		if v := strings.TrimSpace(*f.src); v != "" {
			*f.dst = v
		}
	}
	return out
}

// applyTotals prices the quotation's items and stores the sums on it
func applyTotals(q *entity.Quotation) {
	lines := make([]pricing.Line, len(q.Items))
	for i := range q.Items {
		lines[i] = q.Items[i].PricingLine()
	}

	totals := pricing.Compute(lines, q.TaxType)
	for i := range q.Items {
		q.Items[i].TaxAmount = totals.Lines[i].Tax
		q.Items[i].Total = totals.Lines[i].Total
	}

	q.Subtotal = totals.Subtotal
	q.TotalTax = totals.Tax
	q.TotalAmount = totals.Total
	q.TotalPurchase = totals.Purchase
	q.DeriveMargin()
}
