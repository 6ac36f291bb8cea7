package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// PartyHandler handles party-related HTTP requests
type PartyHandler struct {
	partyService *service.PartyService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(partyService *service.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// List handles listing parties
// @Summary List Parties
// @Tags parties
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Matches name, phone, email or party code"
// @Success 200 {object} response.APIResponse
// @Router /parties [get]
func (h *PartyHandler) List(c *gin.Context) {
	params := pagination.FromQuery(c.Query("page"), c.Query("per_page"))

	result, err := h.partyService.ListParties(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Parties retrieved successfully", result)
}

// Get handles getting a single party
// @Summary Get Party
// @Tags parties
// @Produce json
// @Param id path string true "Party ID"
// @Success 200 {object} response.APIResponse
// @Router /parties/{id} [get]
func (h *PartyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "party")
	if !ok {
		return
	}

	party, err := h.partyService.GetParty(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party retrieved successfully", party)
}

// Create handles creating a party
// @Summary Create Party
// @Description Create a party; the party code is assigned automatically
// @Tags parties
// @Accept json
// @Produce json
// @Param request body request.PartyRequest true "Party data"
// @Success 201 {object} response.APIResponse
// @Router /parties [post]
func (h *PartyHandler) Create(c *gin.Context) {
	var req request.PartyRequest
	if !bindJSON(c, &req, false) {
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), req.CreateInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Party created successfully", party)
}

// Update handles updating a party
// @Summary Update Party
// @Tags parties
// @Accept json
// @Produce json
// @Param id path string true "Party ID"
// @Param request body request.PartyRequest true "Party data"
// @Success 200 {object} response.APIResponse
// @Router /parties/{id} [put]
func (h *PartyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "party")
	if !ok {
		return
	}

	var req request.PartyRequest
	if !bindJSON(c, &req, false) {
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), &service.UpdatePartyInput{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party updated successfully", party)
}

// Delete handles deleting a party
// @Summary Delete Party
// @Tags parties
// @Param id path string true "Party ID"
// @Success 200 {object} response.APIResponse
// @Router /parties/{id} [delete]
func (h *PartyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "party")
	if !ok {
		return
	}

	if err := h.partyService.DeleteParty(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party deleted successfully", nil)
}
