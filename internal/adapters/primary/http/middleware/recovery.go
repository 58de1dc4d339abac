package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"submission-tracker-service/internal/adapters/primary/http/dto"
)

// Recovery turns a handler panic into a 500 failure envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.WithFields(log.Fields{
			"panic":      recovered,
			"request_id": c.GetString(ContextRequestID),
		}).Error("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Failure("internal server error"))
	})
}
