package http

import (
	"net/http"
	"strings"
	"time"

	echo "github.com/labstack/echo/v4"

	"github.com/stoneriver/portal/internal/compliance"
	"github.com/stoneriver/portal/internal/repository"
	"github.com/stoneriver/portal/internal/suffix"
)

// customerStatusHandler evaluates a single policy on demand: stored
// status, freshly computed compliance decision, and suffix issues if
// any. Read-only; the batch passes own all mutation.
func customerStatusHandler(customers repository.CustomersRepository, participants repository.ParticipantsRepository, payments repository.PaymentsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		policy := strings.TrimSpace(c.Param("policy"))
		if policy == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing policy number"})
		}

		ctx := c.Request().Context()

		cust, err := customers.GetByPolicyNumber(ctx, policy)
		if err != nil {
			c.Logger().Errorf("customer lookup failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if cust == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown policy number"})
		}

		parts, err := participants.ListByCustomer(ctx, cust.ID)
		if err != nil {
			c.Logger().Errorf("participants lookup failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		pays, err := payments.ListByCustomer(ctx, cust.ID)
		if err != nil {
			c.Logger().Errorf("payments lookup failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		dec := compliance.Evaluate(cust, pays, time.Now())
		issues := suffix.Validate(parts)

		return c.JSON(http.StatusOK, map[string]any{
			"policy_number":     cust.PolicyNumber,
			"name":              cust.FullName(),
			"stored_status":     cust.Status,
			"computed_status":   dec.Status,
			"months_behind":     dec.MonthsBehind,
			"payments_covered":  dec.PaymentsCovered,
			"outstanding":       dec.Outstanding,
			"participant_count": len(parts),
			"suffix_issues":     issues,
		})
	}
}
