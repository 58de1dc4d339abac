package handlers

import (
	"errors"
	"io"
	"net/http"

	"submission-tracker-service/internal/adapters/primary/http/dto"
	"submission-tracker-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

// AttachArtifact takes a multipart form with the record lookup fields, the
// day label and the screenshot file.
func (h *Handler) AttachArtifact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes)

	data, err := readUpload(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	err = h.artifactSvc.Attach(
		c.Request.Context(),
		c.PostForm(dto.FormTableName),
		c.PostForm(dto.FormIdentityColumn),
		c.PostForm(dto.FormIdentityValue),
		c.PostForm(dto.FormDay),
		data,
	)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.MessageResponse{Message: "artifact attached"})
}

func (h *Handler) UpdateArtifactDay(c *gin.Context) {
	var req dto.UpdateArtifactDayRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.artifactSvc.UpdateDay(c.Request.Context(), req.TableName, req.IdentityColumn, req.IdentityValue, req.Day); err != nil {
		mapDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.MessageResponse{Message: "artifact day updated"})
}

func (h *Handler) DeleteArtifact(c *gin.Context) {
	var req dto.DeleteArtifactRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.artifactSvc.Delete(c.Request.Context(), req.TableName, req.IdentityColumn, req.IdentityValue); err != nil {
		mapDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.MessageResponse{Message: "artifact deleted"})
}

func (h *Handler) GetArtifactsByDay(c *gin.Context) {
	items, err := h.artifactSvc.ByDay(c.Request.Context(), c.Param("table"), c.Query("day"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToRecordArtifactResponses(items))
}

func (h *Handler) GetSubmittedDays(c *gin.Context) {
	days, err := h.artifactSvc.Days(c.Request.Context(), c.Param("table"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, days)
}

func (h *Handler) GetArtifactImage(c *gin.Context) {
	data, err := h.artifactSvc.Bytes(
		c.Request.Context(),
		c.Param("table"),
		c.Query(dto.FormIdentityColumn),
		c.Query(dto.FormIdentityValue),
	)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToArtifactImageResponse(data))
}

func (h *Handler) GetRecordsWithArtifacts(c *gin.Context) {
	items, err := h.artifactSvc.RecordsWithArtifacts(c.Request.Context(), c.Param("table"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToRecordArtifactResponses(items))
}

func readUpload(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile(dto.FormScreenshot)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, domain.Validationf("screenshot must be at most %d bytes", tooLarge.Limit)
		case errors.Is(err, http.ErrMissingFile):
			return nil, domain.Validationf("screenshot is required")
		default:
			return nil, domain.Validationf("invalid multipart form")
		}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, domain.Internal("open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.Internal("read upload", err)
	}
	return data, nil
}
