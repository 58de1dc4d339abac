package handlers

import (
	"errors"
	"net/http"

	"submission-tracker-service/internal/adapters/primary/http/dto"
	"submission-tracker-service/internal/adapters/primary/http/middleware"
	"submission-tracker-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const internalErrorMessage = "internal server error"

func mapDomainError(c *gin.Context, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		derr = &domain.Error{Kind: domain.KindInternal, Err: err}
	}

	switch derr.Kind {
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, dto.Failure(derr.Message))

	case domain.KindConflict:
		c.JSON(http.StatusConflict, dto.Failure(derr.Message))

	case domain.KindValidation:
		c.JSON(http.StatusBadRequest, dto.Failure(derr.Message))

	default:
		// Storage detail stays in the log.
		log.WithError(err).WithFields(log.Fields{
			"route":      c.FullPath(),
			"request_id": c.GetString(middleware.ContextRequestID),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, dto.Failure(internalErrorMessage))
	}
}
