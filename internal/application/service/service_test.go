package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db         *gorm.DB
	parties    *PartyService
	components *ComponentService
	quotations *QuotationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenInMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	partyRepo := infraRepo.NewPartyRepository(db)
	counterRepo := infraRepo.NewCounterRepository(db)
	quotations := NewQuotationService(
		infraRepo.NewQuotationRepository(db),
		partyRepo,
		counterRepo,
		config.QuotationConfig{ValidityDays: 30, DefaultTaxRate: 18, DefaultTaxType: "inclusive"},
		config.BusinessConfig{Name: "EmpressPC", Phone: "+91 9876543210", GSTIN: "GSTIN1234567890"},
	)
	quotations.now = func() time.Time { return fixedNow }

	return &fixture{
		db:         db,
		parties:    NewPartyService(partyRepo, counterRepo),
		components: NewComponentService(infraRepo.NewComponentRepository(db)),
		quotations: quotations,
	}
}

func (f *fixture) party(t *testing.T, name string) *entity.Party {
	t.Helper()
	party, err := f.parties.CreateParty(context.Background(), &CreatePartyInput{Name: name, Phone: "9800000000"})
	require.NoError(t, err)
	return party
}

func sampleItems() []QuotationItemInput {
	return []QuotationItemInput{{
		Category:      "Processor",
		Brand:         "Intel",
		Model:         "Core i5-13400F",
		Quantity:      2,
		PurchasePrice: decimal.NewFromInt(75),
		SalePrice:     decimal.NewFromInt(100),
	}}
}

func assertStatus(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

func TestCreatePartyAssignsSequentialCodes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.party(t, "Asha")
	second := f.party(t, "Ravi")
	assert.Equal(t, "P001", first.Code)
	assert.Equal(t, "P002", second.Code)

	require.NoError(t, f.parties.DeleteParty(ctx, second.ID))
	third := f.party(t, "Meera")
	assert.Equal(t, "P003", third.Code)
}

func TestCreatePartyContinuesAfterExistingCodes(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&entity.Party{Code: "P007", Name: "Imported", Phone: "1"}).Error)

	party := f.party(t, "Asha")
	assert.Equal(t, "P008", party.Code)
}

func TestCreatePartyRetriesTakenCode(t *testing.T) {
	f := newFixture(t)
	f.party(t, "Asha")

	// Out of band insert takes the code the counter will hand out next.
	require.NoError(t, f.db.Create(&entity.Party{Code: "P002", Name: "Imported", Phone: "1"}).Error)

	party := f.party(t, "Ravi")
	assert.Equal(t, "P003", party.Code)
}

func TestCreatePartyValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.parties.CreateParty(context.Background(), &CreatePartyInput{Name: "  "})
	appErr := assertStatus(t, err, http.StatusBadRequest)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "name", appErr.Errors[0].Field)
	assert.Equal(t, "phone", appErr.Errors[1].Field)

	email := "  Asha@Example.COM "
	party, err := f.parties.CreateParty(context.Background(), &CreatePartyInput{Name: "Asha", Phone: "98", Email: &email})
	require.NoError(t, err)
	require.NotNil(t, party.Email)
	assert.Equal(t, "asha@example.com", *party.Email)
}

func TestUpdatePartyKeepsCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	party := f.party(t, "Asha")

	updated, err := f.parties.UpdateParty(ctx, &UpdatePartyInput{ID: party.ID, Name: "Asha Traders", Phone: "99"})
	require.NoError(t, err)
	assert.Equal(t, "P001", updated.Code)
	assert.Equal(t, "Asha Traders", updated.Name)

	_, err = f.parties.UpdateParty(ctx, &UpdatePartyInput{ID: uuid.New(), Name: "X", Phone: "1"})
	assertStatus(t, err, http.StatusNotFound)

	_, err = f.parties.GetParty(ctx, uuid.New())
	assertStatus(t, err, http.StatusNotFound)
}

func TestComponentCatalog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.components.CreateComponent(ctx, &ComponentInput{Category: "Processor"})
	appErr := assertStatus(t, err, http.StatusBadRequest)
	assert.Len(t, appErr.Errors, 2)

	created, err := f.components.CreateComponent(ctx, &ComponentInput{
		Category: "Processor",
		Brand:    "AMD",
		Models: []ComponentModelInput{
			{Model: "Ryzen 5 7600", SalePrice: decimal.NewFromInt(19000)},
			{Model: "Ryzen 7 7700X", SalePrice: decimal.NewFromInt(29000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Models, 2)
	assert.Equal(t, entity.DefaultHSNSAC, created.Models[0].HSNSAC)

	byBrand, err := f.components.ComponentsByBrand(ctx, "amd")
	require.NoError(t, err)
	assert.Len(t, byBrand, 1)

	found, err := f.components.SearchComponents(ctx, "7700")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	_, err = f.components.SearchComponents(ctx, " ")
	assertStatus(t, err, http.StatusBadRequest)

	updated, err := f.components.UpdateComponent(ctx, created.ID, &ComponentInput{
		Category: "Processor",
		Brand:    "AMD",
		Models:   []ComponentModelInput{{Model: "Ryzen 9 7950X", SalePrice: decimal.NewFromInt(55000)}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Models, 1)
	assert.Equal(t, "Ryzen 9 7950X", updated.Models[0].Model)

	require.NoError(t, f.components.DeleteComponent(ctx, created.ID))
	_, err = f.components.GetComponent(ctx, created.ID)
	assertStatus(t, err, http.StatusNotFound)
}

func TestCreateQuotationDerivesNumberTitleAndTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	party := f.party(t, "Asha")

	q, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Items: sampleItems()})
	require.NoError(t, err)

	assert.Equal(t, "QT2610-001", q.QuotationNumber)
	assert.Equal(t, "Asha_Quotation", q.Title)
	assert.Equal(t, enum.QuotationStatusDraft, q.Status)
	assert.Equal(t, enum.TaxTypeInclusive, q.TaxType)
	assert.Zero(t, q.RevisionNumber)
	assert.WithinDuration(t, fixedNow.AddDate(0, 0, 30), q.ValidUntil, time.Second)
	require.NotNil(t, q.Party)
	assert.Equal(t, "P001", q.Party.Code)
	assert.Equal(t, "EmpressPC", q.BusinessDetails.Data().Name)

	// 2 x 100 inclusive of 18% tax
	require.Len(t, q.Items, 1)
	assert.Equal(t, entity.DefaultHSNSAC, q.Items[0].HSNSAC)
	assert.Equal(t, "18.00", q.Items[0].TaxPercentage.StringFixed(2))
	assert.Equal(t, "30.51", q.Items[0].TaxAmount.StringFixed(2))
	assert.Equal(t, "169.49", q.Subtotal.StringFixed(2))
	assert.Equal(t, "30.51", q.TotalTax.StringFixed(2))
	assert.Equal(t, "200.00", q.TotalAmount.StringFixed(2))
	assert.Equal(t, "150.00", q.TotalPurchase.StringFixed(2))
	assert.Equal(t, "50.00", q.Margin.StringFixed(2))
	assert.Equal(t, "25.00", q.MarginPercentage.StringFixed(2))

	second, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Items: sampleItems()})
	require.NoError(t, err)
	assert.Equal(t, "QT2610-002", second.QuotationNumber)
	assert.Equal(t, "Asha_Quotation_v2", second.Title)
}

func TestCreateQuotationExclusiveTax(t *testing.T) {
	f := newFixture(t)
	party := f.party(t, "Asha")
	exclusive := enum.TaxTypeExclusive

	q, err := f.quotations.CreateQuotation(context.Background(), &CreateQuotationInput{
		PartyID: party.ID,
		TaxType: &exclusive,
		Items:   sampleItems(),
	})
	require.NoError(t, err)
	assert.Equal(t, "200.00", q.Subtotal.StringFixed(2))
	assert.Equal(t, "36.00", q.TotalTax.StringFixed(2))
	assert.Equal(t, "236.00", q.TotalAmount.StringFixed(2))
	assert.Equal(t, "86.00", q.Margin.StringFixed(2))
	assert.Equal(t, "36.44", q.MarginPercentage.StringFixed(2))
}

func TestCreateQuotationTitleSkipsDeletedAndHighestVersion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	party := f.party(t, "Asha")

	v3 := "Asha_Quotation_v3"
	taken, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Title: v3, Items: sampleItems()})
	require.NoError(t, err)
	require.NoError(t, f.quotations.DeleteQuotation(ctx, taken.ID))

	q, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Items: sampleItems()})
	require.NoError(t, err)
	assert.Equal(t, "Asha_Quotation_v4", q.Title)
}

func TestCreateQuotationRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	party := f.party(t, "Asha")

	_, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{Items: sampleItems()})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: uuid.New(), Items: sampleItems()})
	assertStatus(t, err, http.StatusNotFound)

	items := sampleItems()
	items[0].Quantity = 0
	items[0].Model = ""
	_, err = f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Items: items})
	appErr := assertStatus(t, err, http.StatusBadRequest)
	assert.Len(t, appErr.Errors, 2)

	_, err = f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Title: "Custom", Items: sampleItems()})
	require.NoError(t, err)
	_, err = f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Title: "custom", Items: sampleItems()})
	appErr = assertStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Quotation title already exists", appErr.Message)
}

func TestUpdateQuotationRecomputesOnlyWithItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	party := f.party(t, "Asha")

	q, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Items: sampleItems()})
	require.NoError(t, err)

	notes := "Delivery in 3 days"
	sent := enum.QuotationStatusSent
	updated, err := f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: q.ID, Notes: &notes, Status: &sent})
	require.NoError(t, err)
	assert.Equal(t, sent, updated.Status)
	assert.Equal(t, notes, *updated.Notes)
	assert.Equal(t, "200.00", updated.TotalAmount.StringFixed(2))
	assert.Len(t, updated.Items, 1)

	items := sampleItems()
	items[0].Quantity = 1
	rate := decimal.NewFromInt(28)
	items[0].TaxPercentage = &rate
	updated, err = f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: q.ID, Items: items})
	require.NoError(t, err)
	assert.Equal(t, "100.00", updated.TotalAmount.StringFixed(2))
	assert.Equal(t, "21.88", updated.TotalTax.StringFixed(2))
	assert.Equal(t, "75.00", updated.TotalPurchase.StringFixed(2))
	assert.Equal(t, "QT2610-001", updated.QuotationNumber)

	other := f.party(t, "Ravi")
	updated, err = f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: q.ID, PartyID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, "P002", updated.Party.Code)

	missing := uuid.New()
	_, err = f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: q.ID, PartyID: &missing})
	assertStatus(t, err, http.StatusNotFound)

	_, err = f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: uuid.New()})
	assertStatus(t, err, http.StatusNotFound)
}

func TestUpdateQuotationTaxTypeKeepsStoredTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	party := f.party(t, "Asha")

	q, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Items: sampleItems()})
	require.NoError(t, err)
	require.Equal(t, enum.TaxTypeInclusive, q.TaxType)
	require.Equal(t, "30.51", q.TotalTax.StringFixed(2))

	exclusive := enum.TaxTypeExclusive
	updated, err := f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: q.ID, TaxType: &exclusive})
	require.NoError(t, err)
	assert.Equal(t, enum.TaxTypeExclusive, updated.TaxType)
	assert.Equal(t, "200.00", updated.TotalAmount.StringFixed(2))
	assert.Equal(t, "30.51", updated.TotalTax.StringFixed(2))
	assert.Equal(t, "150.00", updated.TotalPurchase.StringFixed(2))
	assert.Equal(t, "30.51", updated.Items[0].TaxAmount.StringFixed(2))

	_, err = f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: q.ID, Items: []QuotationItemInput{}})
	appErr := assertStatus(t, err, http.StatusBadRequest)
	require.NotEmpty(t, appErr.Errors)
	assert.Equal(t, "items", appErr.Errors[0].Field)

	stored, err := f.quotations.GetQuotation(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "200.00", stored.TotalAmount.StringFixed(2))
	assert.Equal(t, "30.51", stored.TotalTax.StringFixed(2))
	assert.Equal(t, "150.00", stored.TotalPurchase.StringFixed(2))
	assert.Len(t, stored.Items, 1)

	// Replacing the items prices them under the stored tax type.
	repriced, err := f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: q.ID, Items: sampleItems()})
	require.NoError(t, err)
	assert.Equal(t, "200.00", repriced.Subtotal.StringFixed(2))
	assert.Equal(t, "36.00", repriced.TotalTax.StringFixed(2))
	assert.Equal(t, "236.00", repriced.TotalAmount.StringFixed(2))
}

func TestRevisionChain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	party := f.party(t, "Asha")
	short := party.ID.String()[:8]

	root, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: party.ID, Items: sampleItems()})
	require.NoError(t, err)

	sent := enum.QuotationStatusSent
	_, err = f.quotations.UpdateQuotation(ctx, &UpdateQuotationInput{ID: root.ID, Status: &sent})
	require.NoError(t, err)

	first, err := f.quotations.CreateRevision(ctx, root.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.RevisionNumber)
	assert.Equal(t, "quote-"+short+"-1", first.QuotationNumber)
	assert.Equal(t, first.QuotationNumber, first.Title)
	assert.Equal(t, enum.QuotationStatusDraft, first.Status)
	assert.Equal(t, root.ID, *first.RevisionOf)
	assert.Equal(t, root.ID, *first.RevisionRootID)
	assert.Equal(t, root.TotalAmount.StringFixed(2), first.TotalAmount.StringFixed(2))
	require.Len(t, first.Items, 1)
	assert.NotEqual(t, root.Items[0].ID, first.Items[0].ID)

	title := "Asha revised offer"
	notes := "Second round"
	second, err := f.quotations.CreateRevision(ctx, first.ID, &RevisionInput{Title: &title, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 2, second.RevisionNumber)
	assert.Equal(t, "quote-"+short+"-2", second.QuotationNumber)
	assert.Equal(t, title, second.Title)
	assert.Equal(t, notes, *second.Notes)
	assert.Equal(t, first.ID, *second.RevisionOf)
	assert.Equal(t, root.ID, *second.RevisionRootID)

	// A second revision of the root reuses its number but not its title.
	sibling, err := f.quotations.CreateRevision(ctx, root.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sibling.RevisionNumber)
	assert.Equal(t, first.QuotationNumber+"_v2", sibling.Title)

	for _, id := range []uuid.UUID{root.ID, first.ID, second.ID} {
		set, err := f.quotations.ListRevisions(ctx, id)
		require.NoError(t, err)
		require.Len(t, set, 4)
		assert.Equal(t, root.ID, set[0].ID)
		assert.Equal(t, 2, set[3].RevisionNumber)
	}

	// Deleting the root leaves the revisions in place.
	require.NoError(t, f.quotations.DeleteQuotation(ctx, root.ID))
	kept, err := f.quotations.GetQuotation(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, *kept.RevisionRootID)

	_, err = f.quotations.CreateRevision(ctx, uuid.New(), nil)
	assertStatus(t, err, http.StatusNotFound)
}

func TestListQuotationsByParty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	asha := f.party(t, "Asha")
	ravi := f.party(t, "Ravi")

	for i := 0; i < 2; i++ {
		_, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: asha.ID, Items: sampleItems()})
		require.NoError(t, err)
	}
	_, err := f.quotations.CreateQuotation(ctx, &CreateQuotationInput{PartyID: ravi.ID, Items: sampleItems()})
	require.NoError(t, err)

	byCode, err := f.quotations.ListQuotationsByParty(ctx, "p001")
	require.NoError(t, err)
	assert.Len(t, byCode, 2)

	byID, err := f.quotations.ListQuotationsByParty(ctx, ravi.ID.String())
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	_, err = f.quotations.ListQuotationsByParty(ctx, "P999")
	assertStatus(t, err, http.StatusNotFound)

	page, err := f.quotations.ListQuotations(ctx, &ListQuotationsInput{PartyID: &asha.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
}
