package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/efes-rota/rota-planner/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondStoreError maps store and context errors to HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateOrder), errors.Is(err, store.ErrOrderIDTaken):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalidRecord),
		errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, store.ErrUnknownStation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, "request cancelled")
	default:
		logrus.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
