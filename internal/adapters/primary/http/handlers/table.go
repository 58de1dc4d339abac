package handlers

import (
	"net/http"

	"submission-tracker-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListTables(c *gin.Context) {
	names, err := h.tableSvc.List(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, names)
}

func (h *Handler) CreateTable(c *gin.Context) {
	var req dto.CreateTableRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.tableSvc.Create(c.Request.Context(), req.TableName, req.Columns); err != nil {
		log.WithError(err).WithField("table", req.TableName).Debug("create table rejected")
		mapDomainError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.TableResponse{TableName: req.TableName, Columns: req.Columns})
}

func (h *Handler) DeleteTable(c *gin.Context) {
	table := c.Param("table")

	if err := h.tableSvc.Delete(c.Request.Context(), table); err != nil {
		mapDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.TableResponse{TableName: table})
}

func (h *Handler) GetColumns(c *gin.Context) {
	columns, err := h.tableSvc.Columns(c.Request.Context(), c.Param("table"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, columns)
}

func (h *Handler) GetStats(c *gin.Context) {
	table := c.Param("table")

	stats, err := h.statsSvc.Stats(c.Request.Context(), table)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, dto.ToTableStatsResponse(table, stats))
}
