package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/internal/domain/apperror"
	"github.com/oksasatya/grandline-driver/pkg/response"
	"github.com/oksasatya/grandline-driver/pkg/validation"
)

// statusFor maps a backend error to the HTTP status the real API would use.
func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindAuth, apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindNotImplemented:
		return http.StatusNotImplemented
	case apperror.KindTimeout:
		return http.StatusGatewayTimeout
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	status := statusFor(err)
	var errs []string
	var ae *apperror.Error
	if errors.As(err, &ae) && ae.Field != "" {
		errs = []string{ae.Field + " " + ae.Message}
	}
	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.JSON(c, response.Error[any](c, status, apperror.MessageOf(err, fallback), errs))
}

func badPayload(c *gin.Context, err error) {
	response.JSON(c, response.Error[any](c, http.StatusBadRequest, "Invalid payload", validation.ToList(err)))
}
