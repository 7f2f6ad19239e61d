package api

import (
	"context"
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"ledger_system/internal/domain" // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// EventLister reads persisted notifications; *events.Store satisfies it
type EventLister interface {
	List(ctx context.Context, kind domain.EventKind, offset, limit int) ([]domain.Event, int64, error)
}

// ListEventsHandler returns notifications newest first, optionally filtered by kind
func ListEventsHandler(lister EventLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		list, total, err := lister.List(c.Request.Context(), domain.EventKind(c.Query("kind")), offset, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"events":      list,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		})
	}
}
