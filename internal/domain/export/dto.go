package export

import (
	table "github.com/cmlabs-hris/kintai-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type Request struct {
	YearMonth  string  `json:"yearMonth"`
	Format     string  `json:"format"`
	EmployeeID *string `json:"employeeId,omitempty"`
}

func (r *Request) Validate() error {
	var errs validator.ValidationErrors
	if errs.Required("yearMonth", r.YearMonth) {
		if _, ok := validator.IsValidYearMonth(r.YearMonth); !ok {
			errs.Add("yearMonth", "yearMonth must be YYYYMM")
		}
	}
	switch table.Format(r.Format) {
	case "", table.FormatCSV, table.FormatXLSX:
	default:
		errs.Add("format", "format must be csv or xlsx")
	}
	if r.EmployeeID != nil && !validator.IsValidEmployeeID(*r.EmployeeID) {
		errs.Add("employeeId", "invalid employeeId")
	}
	return errs.OrNil()
}

// OutputFormat returns the requested format, CSV when unset.
func (r Request) OutputFormat() table.Format {
	if r.Format == "" {
		return table.FormatCSV
	}
	return table.Format(r.Format)
}

// File is a rendered export ready to be streamed.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}
