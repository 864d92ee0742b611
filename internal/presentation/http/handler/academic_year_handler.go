package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/application/service"
	"github.com/feetrack/feetrack-api/internal/presentation/http/dto/response"
)

// AcademicYearHandler handles academic year HTTP requests
type AcademicYearHandler struct {
	yearService *service.AcademicYearService
}

// NewAcademicYearHandler creates a new academic year handler
func NewAcademicYearHandler(yearService *service.AcademicYearService) *AcademicYearHandler {
	return &AcademicYearHandler{yearService: yearService}
}

// List handles listing academic years
func (h *AcademicYearHandler) List(c *gin.Context) {
	years, err := h.yearService.ListAcademicYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Academic years retrieved successfully", years)
}

// Create handles creating an academic year
func (h *AcademicYearHandler) Create(c *gin.Context) {
	var req struct {
		Label     string    `json:"label" binding:"required"`
		StartDate time.Time `json:"start_date" binding:"required"`
		EndDate   time.Time `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	year, err := h.yearService.CreateAcademicYear(c.Request.Context(), &service.CreateAcademicYearInput{
		Label:     req.Label,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Academic year created successfully", year)
}

// Get handles getting a single academic year
func (h *AcademicYearHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid academic year ID")
		return
	}

	year, err := h.yearService.GetAcademicYear(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Academic year retrieved successfully", year)
}

// GetActive handles getting the active academic year
func (h *AcademicYearHandler) GetActive(c *gin.Context) {
	year, err := h.yearService.GetActiveAcademicYear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active academic year retrieved successfully", year)
}

// Activate handles making an academic year the active one
func (h *AcademicYearHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid academic year ID")
		return
	}

	year, err := h.yearService.ActivateAcademicYear(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Academic year activated successfully", year)
}
