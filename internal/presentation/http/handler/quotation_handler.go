package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// List handles listing quotations
// @Summary List Quotations
// @Description Get all quotations with pagination and filtering
// @Tags quotations
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Matches title or quotation number"
// @Param status query string false "Status filter, e.g. draft"
// @Param party_id query string false "Party filter"
// @Param sort_by query string false "date, created_at, title, total_amount, ..."
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} response.APIResponse
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	input := &service.ListQuotationsInput{
		Pagination: pagination.FromQuery(c.Query("page"), c.Query("per_page")),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if s := c.Query("status"); s != "" {
		status, err := parseStatus(s)
		if err != nil {
			response.Error(c, apperror.NewFieldError("status", err.Error()))
			return
		}
		input.Status = &status
	}

	if p := c.Query("party_id"); p != "" {
		partyID, err := uuid.Parse(p)
		if err != nil {
			response.Error(c, apperror.NewFieldError("party_id", "Invalid party ID"))
			return
		}
		input.PartyID = &partyID
	}

	result, err := h.quotationService.ListQuotations(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Quotations retrieved successfully", result)
}

// ListByParty handles listing the quotations of one party
// @Summary List Quotations by Party
// @Tags quotations
// @Produce json
// @Param partyId path string true "Party ID or party code"
// @Success 200 {object} response.APIResponse
// @Router /quotations/party/{partyId} [get]
func (h *QuotationHandler) ListByParty(c *gin.Context) {
	quotations, err := h.quotationService.ListQuotationsByParty(c.Request.Context(), c.Param("partyId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotations retrieved successfully", quotations)
}

// Get handles getting a single quotation
// @Summary Get Quotation
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// Create handles creating a quotation
// @Summary Create Quotation
// @Description Create a quotation; number, title and totals are derived
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body request.CreateQuotationRequest true "Quotation data"
// @Success 201 {object} response.APIResponse
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var req request.CreateQuotationRequest
	if !bindJSON(c, &req, false) {
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), req.Input())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

// Update handles updating a quotation
// @Summary Update Quotation
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body request.UpdateQuotationRequest true "Fields to change"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	var req request.UpdateQuotationRequest
	if !bindJSON(c, &req, false) {
		return
	}

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), req.Input(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", quotation)
}

// Delete handles deleting a quotation
// @Summary Delete Quotation
// @Tags quotations
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation deleted successfully", nil)
}

// CreateRevision handles copying a quotation into a new revision
// @Summary Create Revision
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Source quotation ID"
// @Param request body request.RevisionRequest false "Title and notes overrides"
// @Success 201 {object} response.APIResponse
// @Router /quotations/{id}/revisions [post]
func (h *QuotationHandler) CreateRevision(c *gin.Context) {
	id, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	var req request.RevisionRequest
	if !bindJSON(c, &req, true) {
		return
	}

	revision, err := h.quotationService.CreateRevision(c.Request.Context(), id, req.Input())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation revision created successfully", revision)
}

// ListRevisions handles listing the revision set of a quotation
// @Summary List Revisions
// @Tags quotations
// @Produce json
// @Param id path string true "Any quotation ID in the set"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/revisions [get]
func (h *QuotationHandler) ListRevisions(c *gin.Context) {
	id, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	revisions, err := h.quotationService.ListRevisions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation revisions retrieved successfully", revisions)
}

// parseStatus accepts a status name or its numeric value
func parseStatus(s string) (enum.QuotationStatus, error) {
	if n, err := strconv.Atoi(s); err == nil {
		status := enum.QuotationStatus(n)
		if !status.IsValid() {
			return 0, apperror.NewBadRequestError("unknown quotation status " + s)
		}
		return status, nil
	}
	return enum.ParseQuotationStatus(s)
}
