package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"

	"github.com/stoneriver/portal/internal/http/middleware"
	"github.com/stoneriver/portal/internal/metrics"
	"github.com/stoneriver/portal/internal/model"
	"github.com/stoneriver/portal/internal/repository"
	"github.com/stoneriver/portal/internal/util"
)

type submitPaymentReq struct {
	PolicyNumber    string  `json:"policy_number"`
	Amount          float64 `json:"amount"`
	Method          string  `json:"method"`
	Period          string  `json:"period"`
	Date            string  `json:"date"` // YYYY-MM-DD or a legacy layout
	ReceiptFilename string  `json:"receipt_filename"`
	RequestID       string  `json:"request_id"`
}

// submitPaymentHandler records one premium receipt submitted by a field
// agent. Idempotent twice over: a request_id seen within 24h short-
// circuits, and an equivalent receipt already on record is reported as
// a duplicate instead of being stored again.
func submitPaymentHandler(db *sqlx.DB, customers repository.CustomersRepository, payments repository.PaymentsRepository, rds *redis.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		agentID, ok := middleware.AgentIDFromCtx(c)
		if !ok || agentID <= 0 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}

		var req submitPaymentReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		req.PolicyNumber = strings.TrimSpace(req.PolicyNumber)
		req.RequestID = strings.TrimSpace(req.RequestID)
		if req.PolicyNumber == "" || req.Amount <= 0 || req.RequestID == "" || len(req.RequestID) > 128 {
			metrics.PaymentsSubmittedTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		period, _ := model.ParsePremiumPeriod(req.Period)

		payDate := time.Now()
		if req.Date != "" {
			t, err := util.ParseFlexibleDate(req.Date)
			if err != nil {
				metrics.PaymentsSubmittedTotal.WithLabelValues("rejected").Inc()
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
			}
			payDate = t
		}

		ctx := c.Request().Context()

		// request_id replay guard (24h window)
		if rds != nil {
			acquired, err := rds.SetNX(ctx, "pay:req:"+req.RequestID, 1, 24*time.Hour).Result()
			if err == nil && !acquired {
				metrics.PaymentsSubmittedTotal.WithLabelValues("duplicate").Inc()
				return c.JSON(http.StatusOK, map[string]any{
					"recorded":   false,
					"idempotent": true,
					"request_id": req.RequestID,
				})
			}
		}

		cust, err := customers.GetByPolicyNumber(ctx, req.PolicyNumber)
		if err != nil {
			metrics.PaymentsSubmittedTotal.WithLabelValues("error").Inc()
			log.Errorf("customer lookup failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if cust == nil {
			metrics.PaymentsSubmittedTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown policy number"})
		}

		p := model.Payment{
			CustomerID:        cust.ID,
			PolicyNumber:      cust.PolicyNumber,
			Amount:            req.Amount,
			Method:            strings.TrimSpace(req.Method),
			Period:            period.String(),
			Date:              payDate,
			ReceiptFilename:   strings.TrimSpace(req.ReceiptFilename),
			RecordedByAgentID: &agentID,
		}

		exists, err := payments.ExistsReceipt(ctx, p)
		if err != nil {
			metrics.PaymentsSubmittedTotal.WithLabelValues("error").Inc()
			log.Errorf("receipt check failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if exists {
			metrics.PaymentsSubmittedTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusConflict, map[string]any{
				"recorded": false,
				"error":    "equivalent receipt already on record",
			})
		}

		// receipt insert + latest_receipt_date stamp in one TX
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			metrics.PaymentsSubmittedTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		defer func() { _ = tx.Rollback() }()

		id, err := payments.Insert(ctx, tx, p)
		if err != nil {
			metrics.PaymentsSubmittedTotal.WithLabelValues("error").Inc()
			log.Errorf("payment insert failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if err := customers.UpdateLatestReceipt(ctx, tx, cust.ID, payDate.Format(util.DateOnly)); err != nil {
			metrics.PaymentsSubmittedTotal.WithLabelValues("error").Inc()
			log.Errorf("latest receipt stamp failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		if err := tx.Commit(); err != nil {
			metrics.PaymentsSubmittedTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		metrics.PaymentsSubmittedTotal.WithLabelValues("recorded").Inc()
		return c.JSON(http.StatusCreated, map[string]any{
			"recorded":      true,
			"payment_id":    id,
			"policy_number": cust.PolicyNumber,
			"payment_date":  payDate.Format(util.DateOnly),
		})
	}
}
