package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/application/service"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/internal/presentation/http/dto/response"
)

// DiscountHandler handles discount-related HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// List handles listing discounts
func (h *DiscountHandler) List(c *gin.Context) {
	params := &repository.DiscountFilterParams{
		Pagination: paginationFromQuery(c),
		IsActive:   boolQuery(c, "is_active"),
	}
	if raw := c.Query("student_id"); raw != "" {
		studentID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid student ID")
			return
		}
		params.StudentID = &studentID
	}

	result, err := h.discountService.ListDiscounts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Discounts retrieved successfully", result)
}

// Get handles getting a single discount
func (h *DiscountHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	discount, err := h.discountService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount retrieved successfully", discount)
}

// Update handles updating a discount's validity window and audit fields
func (h *DiscountHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	var req struct {
		ValidFrom  *time.Time `json:"valid_from"`
		ValidTo    *time.Time `json:"valid_to"`
		Reason     *string    `json:"reason"`
		ApprovedBy *string    `json:"approved_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	discount, err := h.discountService.UpdateDiscount(c.Request.Context(), &service.UpdateDiscountInput{
		ID:         id,
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
		Reason:     req.Reason,
		ApprovedBy: req.ApprovedBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount updated successfully", discount)
}

// Delete handles revoking a discount
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	if err := h.discountService.RevokeDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
