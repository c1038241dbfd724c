package approval

// Status is the approval stage of one monthly report. The value is the
// short numeric code stored in the approvals table.
type Status string

const (
	StatusNoInput           Status = "0"
	StatusInput             Status = "1"
	StatusApprovalPending   Status = "2"
	StatusApproved          Status = "3"
	StatusReinput           Status = "4"
	StatusReApprovalPending Status = "5"

	// StatusUnknown is returned for codes outside the table.
	StatusUnknown Status = "?"
)

type statusInfo struct {
	key      string
	captions map[ReportType]string
	caption  string
}

var statuses = map[Status]statusInfo{
	StatusNoInput: {
		key:     "noInput",
		caption: "No input",
		captions: map[ReportType]string{
			ReportAttendance: "Unapproved",
		},
	},
	StatusInput:             {key: "input", caption: "Input"},
	StatusApprovalPending:   {key: "approvalPending", caption: "Approval pending"},
	StatusApproved:          {key: "approved", caption: "Approved"},
	StatusReinput:           {key: "reinput", caption: "Returned for correction"},
	StatusReApprovalPending: {key: "reApprovalPending", caption: "Re-approval pending"},
}

// AllStatuses lists the known statuses in code order.
func AllStatuses() []Status {
	return []Status{
		StatusNoInput,
		StatusInput,
		StatusApprovalPending,
		StatusApproved,
		StatusReinput,
		StatusReApprovalPending,
	}
}

// ParseStatus maps a stored code to its Status. Unknown codes yield StatusUnknown.
func ParseStatus(code string) Status {
	if _, ok := statuses[Status(code)]; ok {
		return Status(code)
	}
	return StatusUnknown
}

// StatusFromKey maps a machine state name back to its Status.
func StatusFromKey(key string) Status {
	for s, info := range statuses {
		if info.key == key {
			return s
		}
	}
	return StatusUnknown
}

func (s Status) IsKnown() bool {
	_, ok := statuses[s]
	return ok
}

// Key is the camelCase state name used by the transition table and the API.
func (s Status) Key() string {
	if info, ok := statuses[s]; ok {
		return info.key
	}
	return "unknown"
}

// Caption returns the display label of s for a report type.
func (s Status) Caption(rt ReportType) string {
	info, ok := statuses[s]
	if !ok {
		return "Unknown"
	}
	if c, ok := info.captions[rt]; ok {
		return c
	}
	return info.caption
}

// IsLocked reports whether detail records are frozen while in s.
func (s Status) IsLocked() bool {
	switch s {
	case StatusApprovalPending, StatusApproved, StatusReApprovalPending:
		return true
	}
	return false
}
