package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameReceipt(t *testing.T) {
	base := Payment{
		CustomerID: 1,
		Period:     "2024-03",
		Amount:     25.50,
		Date:       time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
	}

	same := base
	same.Amount = 25.505 // within tolerance
	assert.True(t, base.SameReceipt(same))

	diff := base
	diff.Amount = 26.00
	assert.False(t, base.SameReceipt(diff))

	otherCustomer := base
	otherCustomer.CustomerID = 2
	assert.False(t, base.SameReceipt(otherCustomer))

	otherDay := base
	otherDay.Date = otherDay.Date.AddDate(0, 0, 1)
	assert.False(t, base.SameReceipt(otherDay))

	otherPeriod := base
	otherPeriod.Period = "2024-04"
	assert.False(t, base.SameReceipt(otherPeriod))
}
