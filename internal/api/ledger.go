package api

import (
	"encoding/hex" // Call data decoding
	"net/http"     // HTTP status codes
	"strings"      // String manipulation

	"ledger_system/internal/domain"     // Domain models
	"ledger_system/internal/ledger"     // Ledger service
	"ledger_system/internal/middleware" // Caller lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// CallRequest is the body of a ledger call. Amount is a decimal in whole
// units, Data an optional hex string.
type CallRequest struct {
	Amount string `json:"amount"`
	Data   string `json:"data"`
}

// LedgerCallHandler routes /ledger and /ledger/:op through the ledger's
// dispatch table. POST /ledger is a bare transfer. Calls that match no entry
// point are rejected before their amount is looked at.
func LedgerCallHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.Caller(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		op := c.Param("op") // Empty for a bare transfer

		var req CallRequest // Bind JSON request to struct
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
		}
		call := ledger.Call{Operation: op, Caller: caller, Data: decodeData(req.Data)}
		// Unknown entry points fail the same way whatever their amount
		if _, err := ledger.Match(call); err != nil {
			respondError(c, err)
			return
		}
		if op != ledger.OpCurrentBalance {
			amount, err := domain.ParseAmount(req.Amount) // Parse decimal amount
			if err != nil {
				respondError(c, err)
				return
			}
			// Transfers and withdrawals must move value
			if amount <= 0 {
				respondError(c, &domain.InvalidAmountError{Input: req.Amount})
				return
			}
			call.Amount = amount
		}

		res, err := l.Dispatch(ctx, call)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"operation": res.Operation, "balance": res.Balance.String()})
	}
}

// decodeData reads hex call data. Anything that is not hex is kept as raw
// bytes, so it still counts as auxiliary data.
func decodeData(s string) []byte {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if trimmed == "" {
		return nil // "" and "0x" carry no data
	}
	if b, err := hex.DecodeString(trimmed); err == nil {
		return b
	}
	return []byte(s) // Not hex, keep the raw bytes
}
