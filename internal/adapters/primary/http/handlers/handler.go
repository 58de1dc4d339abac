package handlers

import (
	"errors"
	"net/http"

	"submission-tracker-service/internal/adapters/primary/http/dto"
	"submission-tracker-service/internal/core/domain"
	"submission-tracker-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	tableSvc       *services.TableService
	recordSvc      *services.RecordService
	artifactSvc    *services.ArtifactService
	statsSvc       *services.StatsService
	uploadMaxBytes int64
}

func New(
	tableSvc *services.TableService,
	recordSvc *services.RecordService,
	artifactSvc *services.ArtifactService,
	statsSvc *services.StatsService,
	uploadMaxBytes int64,
) *Handler {
	return &Handler{
		tableSvc:       tableSvc,
		recordSvc:      recordSvc,
		artifactSvc:    artifactSvc,
		statsSvc:       statsSvc,
		uploadMaxBytes: uploadMaxBytes,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Tables
	r.GET("/tables", h.ListTables)
	r.POST("/tables", h.CreateTable)
	r.DELETE("/tables/:table", h.DeleteTable)
	r.GET("/tables/:table/columns", h.GetColumns)
	r.GET("/tables/:table/stats", h.GetStats)

	// Records
	r.GET("/tables/:table/records", h.GetRecords)
	r.DELETE("/tables/:table/records", h.RemoveAllRecords)
	r.POST("/records", h.AddRecords)
	r.PUT("/records", h.UpdateRecord)
	r.DELETE("/records", h.RemoveRecord)

	// Artifacts
	r.POST("/artifacts", h.AttachArtifact)
	r.PATCH("/artifacts/day", h.UpdateArtifactDay)
	r.DELETE("/artifacts", h.DeleteArtifact)
	r.GET("/tables/:table/artifacts", h.GetArtifactsByDay)
	r.GET("/tables/:table/artifacts/days", h.GetSubmittedDays)
	r.GET("/tables/:table/artifacts/image", h.GetArtifactImage)
	r.GET("/tables/:table/records/artifacts", h.GetRecordsWithArtifacts)
}

// bindJSON decodes the body into req. Typed validation failures raised while
// decoding (duplicate or non-string properties) use the failure envelope;
// anything else is reported as invalid JSON.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var derr *domain.Error
	if errors.As(err, &derr) && derr.Kind == domain.KindValidation {
		mapDomainError(c, err)
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": dto.InvalidJSONMessage})
	return false
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, dto.Success(data))
}
