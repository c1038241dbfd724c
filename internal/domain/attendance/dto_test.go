package attendance

import (
	"strings"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRequest_Validate(t *testing.T) {
	req := SaveRequest{
		EmployeeID: "E001",
		YearMonth:  "202410",
		Records: []RecordInput{
			{Date: "2024-10-01", StartTime: strp("09:00"), EndTime: strp("18:00"), WorkStyle: "1", AbsentCode: "000"},
			{Date: "2024-10-02", AbsentCode: "001"},
		},
	}
	assert.NoError(t, req.Validate())
}

func TestSaveRequest_ValidateShape(t *testing.T) {
	req := SaveRequest{
		EmployeeID: "E001",
		YearMonth:  "202410",
		Records: []RecordInput{
			{Date: "2024-11-01"},
			{Date: "2024-10-02", StartTime: strp("9am")},
			{Date: "2024-10-02", Rest: floatp(-1)},
		},
	}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "records[0].date")
	assert.Contains(t, details, "records[1].startTime")
	assert.Contains(t, details, "records[2].date")
	assert.Contains(t, details, "records[2].rest")
}

func TestSaveRequest_ValidateNoteLength(t *testing.T) {
	atLimit := strings.Repeat("休", 255)
	overLimit := strings.Repeat("休", 256)
	req := SaveRequest{
		EmployeeID: "E001",
		YearMonth:  "202410",
		Records: []RecordInput{
			{Date: "2024-10-01", AbsentCode: "000", Note: &atLimit},
			{Date: "2024-10-02", AbsentCode: "000", Note: &overLimit},
		},
	}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.NotContains(t, details, "records[0].note")
	assert.Equal(t, "note must not exceed 255 characters", details["records[1].note"])
}

func TestRecordInput_ToRecord(t *testing.T) {
	rec := RecordInput{Date: "2024-10-03", WorkStyle: "2", AbsentCode: "042"}.ToRecord("E001")
	assert.Equal(t, "E001", rec.EmployeeID)
	assert.Equal(t, day(3), rec.Date)
	assert.Equal(t, WorkStyleTelework, rec.WorkStyle)
	assert.Equal(t, AbsenceUnknown, rec.AbsentCode)
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange("202412")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", from.Format("2006-01-02"))
	assert.Equal(t, "2025-01-01", to.Format("2006-01-02"))
}
