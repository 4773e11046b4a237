package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mercadia/storefront/internal/report"
)

const dateLayout = "2006-01-02"

// GET /reports/sales/summary
//
// Defaults to the last 30 days when no range is given.
func salesSummaryHandler(repo report.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC()
		start := now.AddDate(0, 0, -30)
		end := now

		if s := c.Query("start_date"); s != "" {
			t, err := time.Parse(dateLayout, s)
			if err != nil {
				writeBadRequest(c, "start_date must be YYYY-MM-DD")
				return
			}
			start = t
		}
		if s := c.Query("end_date"); s != "" {
			t, err := time.Parse(dateLayout, s)
			if err != nil {
				writeBadRequest(c, "end_date must be YYYY-MM-DD")
				return
			}
			end = t
		}

		summary, err := repo.SalesSummary(c.Request.Context(), start, end)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
