package http

import (
	"net/http"
	"strconv"
	"strings"

	echo "github.com/labstack/echo/v4"

	"github.com/stoneriver/portal/internal/model"
	"github.com/stoneriver/portal/internal/repository"
)

// listDecisionsHandler serves the audit decision log from ClickHouse,
// filtered by run id or policy number.
func listDecisionsHandler(decisions repository.DecisionsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 50
		offset := 0
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
				limit = n
			}
		}
		if v := c.QueryParam("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		runID := strings.TrimSpace(c.QueryParam("run_id"))
		policy := strings.TrimSpace(c.QueryParam("policy_number"))

		var (
			rows []model.DecisionRecord
			err  error
		)
		switch {
		case runID != "":
			rows, err = decisions.ListByRun(c.Request().Context(), runID, limit, offset)
		case policy != "":
			rows, err = decisions.ListByPolicy(c.Request().Context(), policy, limit, offset)
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "run_id or policy_number required"})
		}
		if err != nil {
			c.Logger().Errorf("clickhouse list failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"limit":   limit,
			"offset":  offset,
			"count":   len(rows),
			"results": rows,
		})
	}
}
