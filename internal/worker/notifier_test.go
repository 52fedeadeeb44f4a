package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stoneriver/portal/internal/model"
)

func TestRenderText(t *testing.T) {
	overdue := model.StatusChange{
		PolicyNumber: "SRP-0001",
		ToStatus:     model.StatusOverdue,
		MonthsBehind: 1,
		Outstanding:  25.50,
	}
	text := renderText(overdue)
	assert.Contains(t, text, "SRP-0001")
	assert.Contains(t, text, "1 month behind")
	assert.Contains(t, text, "25.50")

	suspended := model.StatusChange{
		PolicyNumber: "SRP-0002",
		ToStatus:     model.StatusSuspended,
		MonthsBehind: 3,
		Outstanding:  76.50,
	}
	text = renderText(suspended)
	assert.Contains(t, text, "suspended")
	assert.Contains(t, text, "3 months in arrears")

	other := model.StatusChange{PolicyNumber: "SRP-0003", ToStatus: model.StatusActive}
	assert.Contains(t, renderText(other), "status is now Active")
}
