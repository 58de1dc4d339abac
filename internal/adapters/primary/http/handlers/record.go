package handlers

import (
	"net/http"

	"submission-tracker-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetRecords(c *gin.Context) {
	records, err := h.recordSvc.List(c.Request.Context(), c.Param("table"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, records)
}

func (h *Handler) AddRecords(c *gin.Context) {
	var req dto.AddRecordsRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.recordSvc.Add(c.Request.Context(), req.TableName, req.Records); err != nil {
		mapDomainError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.AddRecordsResponse{TableName: req.TableName, Inserted: len(req.Records)})
}

func (h *Handler) UpdateRecord(c *gin.Context) {
	var req dto.UpdateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.recordSvc.Update(c.Request.Context(), req.TableName, req.IdentityValue, req.Record); err != nil {
		mapDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, req.Record)
}

func (h *Handler) RemoveRecord(c *gin.Context) {
	var req dto.RemoveRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.recordSvc.Remove(c.Request.Context(), req.TableName, req.IdentityColumn, req.IdentityValue); err != nil {
		mapDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.MessageResponse{Message: "record removed"})
}

func (h *Handler) RemoveAllRecords(c *gin.Context) {
	if err := h.recordSvc.RemoveAll(c.Request.Context(), c.Param("table")); err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, dto.MessageResponse{Message: "records removed"})
}
