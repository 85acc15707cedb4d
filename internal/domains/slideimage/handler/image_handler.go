package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slidedeck-backend/internal/domains/slideimage/model"
	"slidedeck-backend/internal/domains/slideimage/service"
	"slidedeck-backend/internal/shared/response"
)

type ImageHandler struct {
	service service.Service
}

func NewImageHandler(service service.Service) *ImageHandler {
	return &ImageHandler{service: service}
}

// ListImages handles GET /slides/:id/images
func (h *ImageHandler) ListImages(c *gin.Context) {
	slideID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	results, err := h.service.ListImages(c.Request.Context(), slideID)
	if err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"data":  results,
		"total": len(results),
	})
}

// AddImage handles POST /slides/:id/images
func (h *ImageHandler) AddImage(c *gin.Context) {
	slideID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.AddImage(c.Request.Context(), slideID, &req)
	if err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// UpdateImage handles PATCH /images/:id
func (h *ImageHandler) UpdateImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.UpdateImage(c.Request.Context(), id, &req)
	if err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// DeleteImage handles DELETE /images/:id
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteImage(c.Request.Context(), id); err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// ReorderImages handles POST /slides/:id/images/reorder
func (h *ImageHandler) ReorderImages(c *gin.Context) {
	slideID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	if err := h.service.Reorder(c.Request.Context(), slideID, &req); err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// SetPrimaryImage handles PUT /slides/:id/images/:image_id/set-primary
func (h *ImageHandler) SetPrimaryImage(c *gin.Context) {
	slideID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	imageID, ok := uuidParam(c, "image_id")
	if !ok {
		return
	}

	if err := h.service.SetPrimary(c.Request.Context(), slideID, imageID); err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// GenerateImages handles POST /slides/:id/images/generate
func (h *ImageHandler) GenerateImages(c *gin.Context) {
	slideID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.GenerateImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.GenerateImages(c.Request.Context(), slideID, &req)
	if err != nil {
		statusCode, message, code := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	// Partial failure is still a 200: the response itemizes both outcomes.
	response.Success(c, http.StatusOK, result)
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
