package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slidedeck-backend/internal/domains/maintenance/service"
	imagemodel "slidedeck-backend/internal/domains/slideimage/model"
	"slidedeck-backend/internal/shared/response"
)

type MaintenanceHandler struct {
	service service.Service
}

func NewMaintenanceHandler(service service.Service) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// MigrateImages handles POST /admin/migrate-slide-images
func (h *MaintenanceHandler) MigrateImages(c *gin.Context) {
	report, err := h.service.RunMigration(c.Request.Context())
	if err != nil {
		statusCode, message, code := imagemodel.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, report)
}

// ValidateIntegrity handles GET /admin/slide-images/integrity
func (h *MaintenanceHandler) ValidateIntegrity(c *gin.Context) {
	reports, err := h.service.ValidateIntegrity(c.Request.Context())
	if err != nil {
		statusCode, message, code := imagemodel.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"slides_with_issues": reports,
		"total":              len(reports),
	})
}

// FixIntegrity handles POST /admin/slide-images/integrity/fix
func (h *MaintenanceHandler) FixIntegrity(c *gin.Context) {
	report, err := h.service.FixIntegrity(c.Request.Context())
	if err != nil {
		statusCode, message, code := imagemodel.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, report)
}
