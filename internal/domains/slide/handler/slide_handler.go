package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slidedeck-backend/internal/domains/slide/model"
	"slidedeck-backend/internal/domains/slide/service"
	"slidedeck-backend/internal/shared/response"
)

type SlideHandler struct {
	service service.Service
}

func NewSlideHandler(service service.Service) *SlideHandler {
	return &SlideHandler{service: service}
}

// CreateSlide handles POST /slides
func (h *SlideHandler) CreateSlide(c *gin.Context) {
	var req model.CreateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.CreateSlide(c.Request.Context(), &req)
	if err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetSlide handles GET /slides/:id
func (h *SlideHandler) GetSlide(c *gin.Context) {
	id, ok := slideIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.GetSlide(c.Request.Context(), id)
	if err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UpdateSlide handles PUT /slides/:id
func (h *SlideHandler) UpdateSlide(c *gin.Context) {
	id, ok := slideIDParam(c)
	if !ok {
		return
	}

	var req model.UpdateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.UpdateSlide(c.Request.Context(), id, &req)
	if err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// DeleteSlide handles DELETE /slides/:id
func (h *SlideHandler) DeleteSlide(c *gin.Context) {
	id, ok := slideIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSlide(c.Request.Context(), id); err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

func slideIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid slide ID format")
		return uuid.Nil, false
	}
	return id, true
}
