package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stoneriver/portal/internal/model"
)

func paidOn(dates ...time.Time) []model.Payment {
	out := make([]model.Payment, len(dates))
	for i, d := range dates {
		out[i] = model.Payment{CustomerID: 7, Amount: 25.50, Date: d}
	}
	return out
}

func TestEvaluateGraceLadderMonthly(t *testing.T) {
	c := customerSince(day(2023, time.January, 1))
	last := day(2024, time.January, 1)

	cases := []struct {
		daysAfter int
		want      model.Status
	}{
		{0, model.StatusActive},
		{30, model.StatusActive},
		{31, model.StatusGracePeriod},
		{60, model.StatusGracePeriod},
		{61, model.StatusSuspended},
		{120, model.StatusSuspended},
		{121, model.StatusLapsed},
		{400, model.StatusLapsed},
	}
	for _, tc := range cases {
		d := EvaluateGrace(c, paidOn(last), last.AddDate(0, 0, tc.daysAfter))
		assert.Equal(t, tc.want, d.Status, "%d days after last payment", tc.daysAfter)
		assert.Equal(t, tc.daysAfter, d.DaysSincePayment)
		assert.Equal(t, 30, d.GraceWindowDays)
	}
}

func TestEvaluateGraceWindowScalesWithPeriod(t *testing.T) {
	last := day(2024, time.January, 1)

	cases := []struct {
		period model.PremiumPeriod
		days   int
		want   model.Status
	}{
		{model.PeriodQuarterly, 90, model.StatusActive},
		{model.PeriodQuarterly, 91, model.StatusGracePeriod},
		{model.PeriodQuarterly, 181, model.StatusLapsed},
		{model.PeriodAnnually, 365, model.StatusActive},
		{model.PeriodAnnually, 366, model.StatusGracePeriod},
		{model.PeriodAnnually, 456, model.StatusLapsed},
	}
	for _, tc := range cases {
		c := customerSince(day(2023, time.January, 1))
		c.PremiumPeriod = tc.period
		d := EvaluateGrace(c, paidOn(last), last.AddDate(0, 0, tc.days))
		assert.Equal(t, tc.want, d.Status, "%s, %d days", tc.period, tc.days)
	}
}

func TestEvaluateGraceUsesLatestReceipt(t *testing.T) {
	c := customerSince(day(2023, time.January, 1))
	pays := paidOn(
		day(2023, time.February, 1),
		day(2024, time.March, 10), // latest, out of order on purpose
		day(2023, time.June, 1),
	)

	d := EvaluateGrace(c, pays, day(2024, time.March, 20))
	assert.Equal(t, model.StatusActive, d.Status)
	assert.Equal(t, 10, d.DaysSincePayment)
}

func TestEvaluateGraceNeverPaidFallsBackToInception(t *testing.T) {
	c := customerSince(day(2024, time.January, 1))

	d := EvaluateGrace(c, nil, day(2024, time.March, 15))
	assert.Equal(t, model.StatusSuspended, d.Status)
	assert.Equal(t, 74, d.DaysSincePayment)
}

func TestEvaluateGraceNeverPaidNoInceptionIsInactive(t *testing.T) {
	c := customerSince(day(2024, time.January, 1))
	c.InceptionDate = nil

	d := EvaluateGrace(c, nil, day(2024, time.March, 15))
	assert.Equal(t, model.StatusInactive, d.Status)
}

func TestEvaluateGraceStickyPassThrough(t *testing.T) {
	c := customerSince(day(2020, time.January, 1))
	c.Status = model.StatusCancelled

	d := EvaluateGrace(c, nil, day(2024, time.March, 15))
	assert.Equal(t, model.StatusCancelled, d.Status)
}

func TestEvaluateGraceFuturePaymentClampsToZeroDays(t *testing.T) {
	c := customerSince(day(2024, time.January, 1))

	d := EvaluateGrace(c, paidOn(day(2024, time.June, 1)), day(2024, time.March, 15))
	assert.Equal(t, model.StatusActive, d.Status)
	assert.Equal(t, 0, d.DaysSincePayment)
}
