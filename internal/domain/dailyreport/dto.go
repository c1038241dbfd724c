package dailyreport

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type ListRequest struct {
	EmployeeID *string `json:"employeeId,omitempty"`
	RoomID     *string `json:"roomId,omitempty"`
	Kind       *string `json:"kind,omitempty"`
	Status     *string `json:"status,omitempty"`
	From       string  `json:"from"`
	To         string  `json:"to"`
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors
	from, okFrom := r.dateField(&errs, "from", r.From)
	to, okTo := r.dateField(&errs, "to", r.To)
	if okFrom && okTo {
		if to.Before(from) {
			errs.Add("to", "to must not be before from")
		} else if to.Sub(from) > 366*24*time.Hour {
			errs.Add("to", "range must not exceed one year")
		}
	}
	if r.Kind != nil && !Kind(*r.Kind).IsValid() {
		errs.Add("kind", "kind must be daily, weekly, monthly or quarterly")
	}
	if r.Status != nil && ParseStatus(*r.Status) == StatusUnknown {
		errs.Add("status", "unknown status")
	}
	return errs.OrNil()
}

func (r *ListRequest) dateField(errs *validator.ValidationErrors, field, value string) (time.Time, bool) {
	if !errs.Required(field, value) {
		return time.Time{}, false
	}
	d, ok := validator.IsValidDate(value)
	if !ok {
		errs.Add(field, field+" must be YYYY-MM-DD")
	}
	return d, ok
}

// Filter is the repository form of ListRequest.
type Filter struct {
	EmployeeID *string
	RoomID     *string
	Kind       *Kind
	Status     *Status
	From       time.Time
	To         time.Time
}

func (r ListRequest) Filter() Filter {
	from, _ := validator.IsValidDate(r.From)
	to, _ := validator.IsValidDate(r.To)
	f := Filter{EmployeeID: r.EmployeeID, RoomID: r.RoomID, From: from, To: to}
	if r.Kind != nil {
		k := Kind(*r.Kind)
		f.Kind = &k
	}
	if r.Status != nil {
		s := ParseStatus(*r.Status)
		f.Status = &s
	}
	return f
}

type SectionInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateRequest struct {
	EmployeeID string         `json:"employeeId"`
	RoomID     string         `json:"roomId"`
	Kind       string         `json:"kind"`
	Date       string         `json:"date"`
	Sections   []SectionInput `json:"sections"`
	// Submit sends every section for review instead of saving a draft.
	Submit bool `json:"submit"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if errs.Required("employeeId", r.EmployeeID) && !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employeeId", "invalid employeeId")
	}
	if errs.Required("roomId", r.RoomID) {
		errs.MaxLength("roomId", r.RoomID, 50)
	}
	if !Kind(r.Kind).IsValid() {
		errs.Add("kind", "kind must be daily, weekly, monthly or quarterly")
	}
	if errs.Required("date", r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD")
		}
	}
	if len(r.Sections) == 0 {
		errs.Add("sections", "sections must not be empty")
	}
	for i, s := range r.Sections {
		validateSection(&errs, fmt.Sprintf("sections[%d].", i), s.Title, s.Content)
	}
	return errs.OrNil()
}

type UpdateSectionRequest struct {
	SectionID string `json:"sectionId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Submit    bool   `json:"submit"`
}

func (r *UpdateSectionRequest) Validate() error {
	var errs validator.ValidationErrors
	if errs.Required("sectionId", r.SectionID) && !validator.IsValidUUID(r.SectionID) {
		errs.Add("sectionId", "invalid sectionId")
	}
	validateSection(&errs, "", r.Title, r.Content)
	return errs.OrNil()
}

type TransitionRequest struct {
	SectionID string  `json:"sectionId"`
	Action    string  `json:"action"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors
	if errs.Required("sectionId", r.SectionID) && !validator.IsValidUUID(r.SectionID) {
		errs.Add("sectionId", "invalid sectionId")
	}
	switch r.Action {
	case string(ActionSubmit), string(ActionResubmit), string(ActionApprove), string(ActionReject):
	default:
		errs.Add("action", "action must be submit, resubmit, approve or reject")
	}
	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}
	return errs.OrNil()
}

func validateSection(errs *validator.ValidationErrors, prefix, title, content string) {
	if errs.Required(prefix+"title", title) {
		errs.MaxLength(prefix+"title", title, 100)
	}
	if len(content) > 20000 {
		errs.Add(prefix+"content", "content must not exceed 20000 characters")
	}
}

type SectionResponse struct {
	ID            string   `json:"id"`
	SortNo        int      `json:"sortNo"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Status        string   `json:"status"`
	StatusCaption string   `json:"statusCaption"`
	RejectReason  *string  `json:"rejectReason,omitempty"`
	Actions       []string `json:"actions"`
}

type PostResponse struct {
	ID         string            `json:"id"`
	RoomID     string            `json:"roomId"`
	EmployeeID string            `json:"employeeId"`
	Kind       string            `json:"kind"`
	Date       string            `json:"date"`
	Sections   []SectionResponse `json:"sections"`
	CreatedAt  time.Time         `json:"createdAt"`
}
