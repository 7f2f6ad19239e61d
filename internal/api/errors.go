package api

import (
	"errors"
	"net/http"

	"ledger_system/internal/domain" // Domain errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// respondError renders a domain error with its context, or a 500 for anything else
func respondError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	status := http.StatusInternalServerError

	var (
		unauthorized *domain.UnauthorizedError
		invalidRole  *domain.InvalidRoleError
		overLimit    *domain.WithdrawalLimitExceededError
		noFunds      *domain.InsufficientFundsError
		noOp         *domain.NoSuchOperationError
	)
	switch {
	case errors.As(err, &unauthorized):
		status = http.StatusForbidden
		body["caller"] = unauthorized.Caller
		body["required_role"] = unauthorized.Required
	case errors.As(err, &invalidRole):
		status = http.StatusBadRequest
		body["role"] = invalidRole.Name
	case errors.As(err, &overLimit):
		status = http.StatusUnprocessableEntity
		body["amount"] = overLimit.Amount.String()
		body["limit"] = overLimit.Limit.String()
	case errors.As(err, &noFunds):
		status = http.StatusUnprocessableEntity
		body["amount"] = noFunds.Amount.String()
		body["balance"] = noFunds.Balance.String()
	case errors.As(err, &noOp):
		status = http.StatusNotFound
		body["operation"] = noOp.Operation
	case errors.Is(err, domain.ErrInvalidAmount):
		status = http.StatusBadRequest
	default:
		logrus.WithField("error", err.Error()).Error("Request failed")
		body["error"] = "Internal error"
	}
	c.JSON(status, body)
}
