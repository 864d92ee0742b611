package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/application/service"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/internal/presentation/http/dto/response"
)

// FeeHandler handles fee category and fee structure HTTP requests
type FeeHandler struct {
	feeService *service.FeeService
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeService *service.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// ListCategories handles listing fee categories
func (h *FeeHandler) ListCategories(c *gin.Context) {
	params := &repository.FeeCategoryFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		IsActive:   boolQuery(c, "is_active"),
	}

	result, err := h.feeService.ListCategories(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Fee categories retrieved successfully", result)
}

// CreateCategory handles creating a fee category
func (h *FeeHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name           string `json:"name" binding:"required"`
		Description    string `json:"description"`
		DefaultAmount  int64  `json:"default_amount"`
		IsOptional     bool   `json:"is_optional"`
		Classification string `json:"classification"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	category, err := h.feeService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		Name:           req.Name,
		Description:    req.Description,
		DefaultAmount:  req.DefaultAmount,
		IsOptional:     req.IsOptional,
		Classification: req.Classification,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fee category created successfully", category)
}

// GetCategory handles getting a single fee category
func (h *FeeHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee category ID")
		return
	}

	category, err := h.feeService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee category retrieved successfully", category)
}

// UpdateCategory handles updating a fee category
func (h *FeeHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee category ID")
		return
	}

	var req struct {
		Name           *string `json:"name"`
		Description    *string `json:"description"`
		DefaultAmount  *int64  `json:"default_amount"`
		IsOptional     *bool   `json:"is_optional"`
		Classification *string `json:"classification"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	category, err := h.feeService.UpdateCategory(c.Request.Context(), &service.UpdateCategoryInput{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		DefaultAmount:  req.DefaultAmount,
		IsOptional:     req.IsOptional,
		Classification: req.Classification,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee category updated successfully", category)
}

// DeleteCategory handles retiring a fee category
func (h *FeeHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee category ID")
		return
	}

	if err := h.feeService.DeactivateCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

type structureItemRequest struct {
	FeeCategoryID uuid.UUID  `json:"fee_category_id" binding:"required"`
	Amount        int64      `json:"amount" binding:"required"`
	DueDate       *time.Time `json:"due_date"`
	IsOptional    bool       `json:"is_optional"`
}

func structureItemsFromRequest(items []structureItemRequest) []service.StructureItemInput {
	inputs := make([]service.StructureItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.StructureItemInput{
			FeeCategoryID: item.FeeCategoryID,
			Amount:        item.Amount,
			DueDate:       item.DueDate,
			IsOptional:    item.IsOptional,
		})
	}
	return inputs
}

// ListStructures handles listing fee structures
func (h *FeeHandler) ListStructures(c *gin.Context) {
	params := &repository.FeeStructureFilterParams{
		Pagination:   paginationFromQuery(c),
		ClassName:    c.Query("class_name"),
		AcademicYear: c.Query("academic_year"),
		IsActive:     boolQuery(c, "is_active"),
	}

	result, err := h.feeService.ListStructures(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Fee structures retrieved successfully", result)
}

// CreateStructure handles creating a fee structure
func (h *FeeHandler) CreateStructure(c *gin.Context) {
	var req struct {
		ClassName     string                 `json:"class_name" binding:"required"`
		AcademicYear  string                 `json:"academic_year" binding:"required"`
		Frequency     enum.PaymentFrequency  `json:"frequency"`
		LateFeeType   enum.LateFeeType       `json:"late_fee_type"`
		LateFeeAmount int64                  `json:"late_fee_amount"`
		Items         []structureItemRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	structure, err := h.feeService.CreateStructure(c.Request.Context(), &service.CreateStructureInput{
		ClassName:     req.ClassName,
		AcademicYear:  req.AcademicYear,
		Frequency:     req.Frequency,
		LateFeeType:   req.LateFeeType,
		LateFeeAmount: req.LateFeeAmount,
		Items:         structureItemsFromRequest(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fee structure created successfully", structure)
}

// GetStructure handles getting a single fee structure
func (h *FeeHandler) GetStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	structure, err := h.feeService.GetStructure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structure retrieved successfully", structure)
}

// UpdateStructure handles updating a fee structure
func (h *FeeHandler) UpdateStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	var req struct {
		Frequency     *enum.PaymentFrequency `json:"frequency"`
		LateFeeType   *enum.LateFeeType      `json:"late_fee_type"`
		LateFeeAmount *int64                 `json:"late_fee_amount"`
		Items         []structureItemRequest `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	input := &service.UpdateStructureInput{
		ID:            id,
		Frequency:     req.Frequency,
		LateFeeType:   req.LateFeeType,
		LateFeeAmount: req.LateFeeAmount,
	}
	if req.Items != nil {
		input.Items = structureItemsFromRequest(req.Items)
	}

	structure, err := h.feeService.UpdateStructure(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structure updated successfully", structure)
}

// DeleteStructure handles retiring a fee structure
func (h *FeeHandler) DeleteStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	if err := h.feeService.DeactivateStructure(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
