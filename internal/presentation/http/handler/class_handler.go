package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/application/service"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/internal/presentation/http/dto/response"
)

// ClassHandler handles class-related HTTP requests
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new class handler
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// List handles listing classes
func (h *ClassHandler) List(c *gin.Context) {
	params := &repository.ClassFilterParams{
		Pagination:   paginationFromQuery(c),
		Search:       c.Query("search"),
		AcademicYear: c.Query("academic_year"),
		IsActive:     boolQuery(c, "is_active"),
	}

	result, err := h.classService.ListClasses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Classes retrieved successfully", result)
}

// Create handles creating a class
func (h *ClassHandler) Create(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		GradeLevel   int    `json:"grade_level"`
		AcademicYear string `json:"academic_year" binding:"required"`
		Sections     []struct {
			Name     string `json:"name" binding:"required"`
			Capacity int    `json:"capacity"`
		} `json:"sections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	input := &service.CreateClassInput{
		Name:         req.Name,
		GradeLevel:   req.GradeLevel,
		AcademicYear: req.AcademicYear,
	}
	for _, sec := range req.Sections {
		input.Sections = append(input.Sections, service.SectionInput{
			Name:     sec.Name,
			Capacity: sec.Capacity,
		})
	}

	class, err := h.classService.CreateClass(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Class created successfully", class)
}

// Get handles getting a single class
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid class ID")
		return
	}

	class, err := h.classService.GetClass(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Class retrieved successfully", class)
}

// Update handles updating a class
func (h *ClassHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid class ID")
		return
	}

	var req struct {
		Name       *string `json:"name"`
		GradeLevel *int    `json:"grade_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	class, err := h.classService.UpdateClass(c.Request.Context(), &service.UpdateClassInput{
		ID:         id,
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Class updated successfully", class)
}

// Delete handles retiring a class
func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid class ID")
		return
	}

	if err := h.classService.DeactivateClass(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
