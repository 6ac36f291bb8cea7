package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// ComponentHandler handles catalog component HTTP requests
type ComponentHandler struct {
	componentService *service.ComponentService
}

// NewComponentHandler creates a new component handler
func NewComponentHandler(componentService *service.ComponentService) *ComponentHandler {
	return &ComponentHandler{componentService: componentService}
}

// List handles listing components
// @Summary List Components
// @Tags components
// @Produce json
// @Param category query string false "Category filter"
// @Param brand query string false "Brand filter"
// @Param search query string false "Matches category, brand or model"
// @Success 200 {object} response.APIResponse
// @Router /components [get]
func (h *ComponentHandler) List(c *gin.Context) {
	components, err := h.componentService.ListComponents(c.Request.Context(), &repository.ComponentFilterParams{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Components retrieved successfully", components)
}

// ByCategory handles listing the components of one category
// @Summary List Components by Category
// @Tags components
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} response.APIResponse
// @Router /components/category/{category} [get]
func (h *ComponentHandler) ByCategory(c *gin.Context) {
	components, err := h.componentService.ComponentsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Components retrieved successfully", components)
}

// ByBrand handles listing the components of one brand
// @Summary List Components by Brand
// @Tags components
// @Produce json
// @Param brand path string true "Brand"
// @Success 200 {object} response.APIResponse
// @Router /components/brand/{brand} [get]
func (h *ComponentHandler) ByBrand(c *gin.Context) {
	components, err := h.componentService.ComponentsByBrand(c.Request.Context(), c.Param("brand"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Components retrieved successfully", components)
}

// Search handles free text component search
// @Summary Search Components
// @Tags components
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {object} response.APIResponse
// @Router /components/search [get]
func (h *ComponentHandler) Search(c *gin.Context) {
	components, err := h.componentService.SearchComponents(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Components retrieved successfully", components)
}

// Get handles getting a single component
// @Summary Get Component
// @Tags components
// @Produce json
// @Param id path string true "Component ID"
// @Success 200 {object} response.APIResponse
// @Router /components/{id} [get]
func (h *ComponentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "component")
	if !ok {
		return
	}

	component, err := h.componentService.GetComponent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Component retrieved successfully", component)
}

// Create handles creating a component
// @Summary Create Component
// @Tags components
// @Accept json
// @Produce json
// @Param request body request.ComponentRequest true "Component data"
// @Success 201 {object} response.APIResponse
// @Router /components [post]
func (h *ComponentHandler) Create(c *gin.Context) {
	var req request.ComponentRequest
	if !bindJSON(c, &req, false) {
		return
	}

	component, err := h.componentService.CreateComponent(c.Request.Context(), req.Input())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Component created successfully", component)
}

// Update handles replacing a component
// @Summary Update Component
// @Tags components
// @Accept json
// @Produce json
// @Param id path string true "Component ID"
// @Param request body request.ComponentRequest true "Component data"
// @Success 200 {object} response.APIResponse
// @Router /components/{id} [put]
func (h *ComponentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "component")
	if !ok {
		return
	}

	var req request.ComponentRequest
	if !bindJSON(c, &req, false) {
		return
	}

	component, err := h.componentService.UpdateComponent(c.Request.Context(), id, req.Input())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Component updated successfully", component)
}

// Delete handles deleting a component
// @Summary Delete Component
// @Tags components
// @Param id path string true "Component ID"
// @Success 200 {object} response.APIResponse
// @Router /components/{id} [delete]
func (h *ComponentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "component")
	if !ok {
		return
	}

	if err := h.componentService.DeleteComponent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Component deleted successfully", nil)
}
