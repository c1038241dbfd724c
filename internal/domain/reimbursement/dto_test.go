package reimbursement

import (
	"strings"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest_Validate(t *testing.T) {
	req := CreateRequest{
		EmployeeID: "E001",
		YearMonth:  "202410",
		Lines: []LineInput{
			{Date: "2024-10-01", Contents: "books", PaidTo: "Kinokuniya", Cost: 3200},
			{Date: "2024-11-01", Contents: "", PaidTo: "x", Cost: -5},
		},
	}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lines[1].date")
	assert.Contains(t, err.Error(), "lines[1].contents")
	assert.Contains(t, err.Error(), "lines[1].cost")
	assert.NotContains(t, err.Error(), "lines[0]")
}

func TestCreateRequest_ValidateLimits(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(l *LineInput)
		field   string
		wantErr bool
	}{
		{"cost at cap", func(l *LineInput) { l.Cost = MaxCost }, "lines[0].cost", false},
		{"cost above cap", func(l *LineInput) { l.Cost = MaxCost + 1 }, "lines[0].cost", true},
		{"negative cost", func(l *LineInput) { l.Cost = -1 }, "lines[0].cost", true},
		{"contents 255 chars", func(l *LineInput) { l.Contents = strings.Repeat("交", 255) }, "lines[0].contents", false},
		{"contents 256 chars", func(l *LineInput) { l.Contents = strings.Repeat("交", 256) }, "lines[0].contents", true},
		{"paidTo 255 chars", func(l *LineInput) { l.PaidTo = strings.Repeat("a", 255) }, "lines[0].paidTo", false},
		{"paidTo 256 chars", func(l *LineInput) { l.PaidTo = strings.Repeat("a", 256) }, "lines[0].paidTo", true},
		{"note 255 chars", func(l *LineInput) { n := strings.Repeat("メ", 255); l.Note = &n }, "lines[0].note", false},
		{"note 256 chars", func(l *LineInput) { n := strings.Repeat("メ", 256); l.Note = &n }, "lines[0].note", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := LineInput{Date: "2024-10-03", Contents: "Taxi", PaidTo: "Nihon Kotsu", Cost: 2400}
			tc.mutate(&line)
			req := CreateRequest{EmployeeID: "E001", YearMonth: "202410", Lines: []LineInput{line}}

			err := req.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tc.field)
		})
	}
}

func TestUpdateRequest_ValidateCostCap(t *testing.T) {
	req := UpdateRequest{
		TNo:        1,
		EmployeeID: "E001",
		Line:       LineInput{Date: "2024-10-03", Contents: "Taxi", PaidTo: "Nihon Kotsu", Cost: MaxCost + 1},
	}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line.cost: cost must not exceed 1000000000000")
}
