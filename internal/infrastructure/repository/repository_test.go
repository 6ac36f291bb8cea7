package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/database"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenInMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createParty(t *testing.T, repo domainRepo.PartyRepository, code, name string) *entity.Party {
	t.Helper()
	party := &entity.Party{Code: code, Name: name, Phone: "9800000000"}
	require.NoError(t, repo.Create(context.Background(), party))
	return party
}

func newQuotation(partyID uuid.UUID, title string, date time.Time) *entity.Quotation {
	return &entity.Quotation{
		PartyID:         partyID,
		QuotationNumber: "QT2501-001",
		Title:           title,
		Date:            date,
		ValidUntil:      date.AddDate(0, 0, 30),
		TaxType:         enum.TaxTypeInclusive,
		Status:          enum.QuotationStatusDraft,
		Items: []entity.QuotationItem{
			{Category: "Processor", Brand: "Intel", Model: "i5", Quantity: 1,
				SalePrice: decimal.NewFromInt(100), PurchasePrice: decimal.NewFromInt(80), TaxPercentage: decimal.NewFromInt(18)},
			{Category: "Memory", Brand: "Corsair", Model: "16GB", Quantity: 2,
				SalePrice: decimal.NewFromInt(50), PurchasePrice: decimal.NewFromInt(40), TaxPercentage: decimal.NewFromInt(18)},
		},
	}
}

func TestCounterNextSeedsThenIncrements(t *testing.T) {
	ctx := context.Background()
	counters := NewCounterRepository(newTestDB(t))

	seeded := 0
	seed := func(context.Context) (int64, error) {
		seeded++
		return 41, nil
	}

	for want := int64(42); want <= 44; want++ {
		got, err := counters.Next(ctx, "seq:P", seed)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 1, seeded)

	current, ok, err := counters.Current(ctx, "seq:P")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(44), current)

	_, ok, err = counters.Current(ctx, "seq:QT")
	require.NoError(t, err)
	assert.False(t, ok)

	first, err := counters.Next(ctx, "seq:QT", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
}

// failedQueries records statements gorm reports with an error
type failedQueries struct {
	logger.Interface
	errs []error
}

func (l *failedQueries) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

func TestCounterFirstUseLogsNoError(t *testing.T) {
	ctx := context.Background()
	recorder := &failedQueries{Interface: logger.Discard}
	db := newTestDB(t).Session(&gorm.Session{Logger: recorder})
	counters := NewCounterRepository(db)

	_, ok, err := counters.Current(ctx, "seq:P")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := counters.Next(ctx, "seq:P", func(context.Context) (int64, error) { return 6, nil })
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	assert.Empty(t, recorder.errs)
}

func TestPartyCodesIncludeDeleted(t *testing.T) {
	ctx := context.Background()
	repo := NewPartyRepository(newTestDB(t))

	createParty(t, repo, "P001", "Asha")
	gone := createParty(t, repo, "P002", "Ravi")
	createParty(t, repo, "X001", "Other")
	require.NoError(t, repo.Delete(ctx, gone.ID))

	codes, err := repo.Codes(ctx, "P")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"P001", "P002"}, codes)

	deleted, err := repo.GetByID(ctx, gone.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	byCode, err := repo.GetByCode(ctx, "P001")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, "Asha", byCode.Name)
}

func TestPartyListSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewPartyRepository(newTestDB(t))

	createParty(t, repo, "P001", "Asha Traders")
	createParty(t, repo, "P002", "Ravi Computers")
	createParty(t, repo, "P003", "100% Hardware")

	parties, total, err := repo.List(ctx, pagination.DefaultPagination(), "traders")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, parties, 1)
	assert.Equal(t, "P001", parties[0].Code)

	_, total, err = repo.List(ctx, nil, "%")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 2}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestComponentSearchMatchesModels(t *testing.T) {
	ctx := context.Background()
	repo := NewComponentRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.Component{
		Category: "Processor", Brand: "Intel",
		Models: []entity.ComponentModel{{Model: "Core i7-13700K", SalePrice: decimal.NewFromInt(30000)}},
	}))
	require.NoError(t, repo.Create(ctx, &entity.Component{
		Category: "Graphics Card", Brand: "NVIDIA",
		Models: []entity.ComponentModel{{Model: "RTX 4070", SalePrice: decimal.NewFromInt(55000)}},
	}))

	found, err := repo.List(ctx, &domainRepo.ComponentFilterParams{Search: "rtx"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "NVIDIA", found[0].Brand)

	found, err = repo.List(ctx, &domainRepo.ComponentFilterParams{Category: "processor"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entity.DefaultHSNSAC, found[0].Models[0].HSNSAC)

	exists, err := repo.Exists(ctx, "graphics card", "nvidia")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestComponentUpdateReplacesModels(t *testing.T) {
	ctx := context.Background()
	repo := NewComponentRepository(newTestDB(t))

	component := &entity.Component{
		Category: "Storage", Brand: "Samsung",
		Models: []entity.ComponentModel{{Model: "870 EVO"}, {Model: "980 PRO"}},
	}
	require.NoError(t, repo.Create(ctx, component))

	component.Models = []entity.ComponentModel{{Model: "990 PRO"}}
	require.NoError(t, repo.Update(ctx, component))

	stored, err := repo.GetByID(ctx, component.ID)
	require.NoError(t, err)
	require.Len(t, stored.Models, 1)
	assert.Equal(t, "990 PRO", stored.Models[0].Model)
}

func TestQuotationItemsKeepOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	party := createParty(t, NewPartyRepository(db), "P001", "Asha")
	repo := NewQuotationRepository(db)

	q := newQuotation(party.ID, "Asha_Quotation", time.Now())
	require.NoError(t, repo.Create(ctx, q))

	stored, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Party)
	assert.Equal(t, "P001", stored.Party.Code)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "i5", stored.Items[0].Model)
	assert.Equal(t, "16GB", stored.Items[1].Model)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQuotationUpdateItems(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	party := createParty(t, NewPartyRepository(db), "P001", "Asha")
	repo := NewQuotationRepository(db)

	q := newQuotation(party.ID, "Asha_Quotation", time.Now())
	require.NoError(t, repo.Create(ctx, q))

	q.Title = "Renamed"
	q.Items = nil
	require.NoError(t, repo.Update(ctx, q, false))

	stored, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Len(t, stored.Items, 2)

	stored.Items = stored.Items[1:]
	require.NoError(t, repo.Update(ctx, stored, true))

	stored, err = repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "16GB", stored.Items[0].Model)
}

func TestQuotationTitlesIncludeDeleted(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	party := createParty(t, NewPartyRepository(db), "P001", "Asha")
	repo := NewQuotationRepository(db)

	first := newQuotation(party.ID, "Asha_Quotation", time.Now())
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, newQuotation(party.ID, "ASHA_Quotation_v2", time.Now())))
	require.NoError(t, repo.Create(ctx, newQuotation(party.ID, "Ravi_Quotation", time.Now())))
	require.NoError(t, repo.Delete(ctx, first.ID))

	titles, err := repo.TitlesLike(ctx, "asha_quotation")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Asha_Quotation", "ASHA_Quotation_v2"}, titles)

	numbers, err := repo.NumbersLike(ctx, "QT2501-")
	require.NoError(t, err)
	assert.Len(t, numbers, 3)

	err = repo.Create(ctx, newQuotation(party.ID, "Ravi_Quotation", time.Now()))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestQuotationRevisionSetOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	party := createParty(t, NewPartyRepository(db), "P001", "Asha")
	repo := NewQuotationRepository(db)
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	root := newQuotation(party.ID, "Asha_Quotation", base)
	require.NoError(t, repo.Create(ctx, root))

	third := newQuotation(party.ID, "Asha_Quotation_v3", base.Add(2*time.Hour))
	third.RevisionNumber = 3
	third.RevisionOf = &root.ID
	third.RevisionRootID = &root.ID
	require.NoError(t, repo.Create(ctx, third))

	second := newQuotation(party.ID, "Asha_Quotation_v2", base.Add(time.Hour))
	second.RevisionNumber = 2
	second.RevisionOf = &root.ID
	second.RevisionRootID = &root.ID
	require.NoError(t, repo.Create(ctx, second))

	// Unrelated quotation from the same party
	require.NoError(t, repo.Create(ctx, newQuotation(party.ID, "Other", base)))

	set, err := repo.ListRevisionSet(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, set, 3)
	assert.Equal(t, root.ID, set[0].ID)
	assert.Equal(t, second.ID, set[1].ID)
	assert.Equal(t, third.ID, set[2].ID)

	byParty, err := repo.ListByParty(ctx, party.ID)
	require.NoError(t, err)
	assert.Len(t, byParty, 4)
}

func TestQuotationListFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	parties := NewPartyRepository(db)
	asha := createParty(t, parties, "P001", "Asha")
	ravi := createParty(t, parties, "P002", "Ravi")
	repo := NewQuotationRepository(db)
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	sent := newQuotation(asha.ID, "Asha_Quotation", base)
	sent.Status = enum.QuotationStatusSent
	require.NoError(t, repo.Create(ctx, sent))
	require.NoError(t, repo.Create(ctx, newQuotation(asha.ID, "Asha_Quotation_v2", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newQuotation(ravi.ID, "Ravi_Quotation", base.Add(2*time.Hour))))

	all, total, err := repo.List(ctx, &domainRepo.QuotationFilterParams{SortBy: "date; DROP TABLE quotations"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, "Ravi_Quotation", all[0].Title)

	status := enum.QuotationStatusSent
	filtered, total, err := repo.List(ctx, &domainRepo.QuotationFilterParams{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, sent.ID, filtered[0].ID)

	_, total, err = repo.List(ctx, &domainRepo.QuotationFilterParams{PartyID: &asha.ID, Search: "v2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestIdempotencyKeysAreScoped(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "abc", Scope: "10.0.0.1", Endpoint: "POST /api/parties",
		ResponseCode: 201, ResponseBody: `{"success":true}`,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "old", Scope: "10.0.0.1", Endpoint: "POST /api/parties",
		ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour),
	}))

	found, err := repo.GetByKey(ctx, "abc", "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 201, found.ResponseCode)

	other, err := repo.GetByKey(ctx, "abc", "10.0.0.2")
	require.NoError(t, err)
	assert.Nil(t, other)

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
