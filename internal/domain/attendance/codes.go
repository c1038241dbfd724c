package attendance

// AbsenceCode classifies a day off. The zero-padded code is what is stored.
type AbsenceCode string

const (
	AbsenceNone               AbsenceCode = "000"
	AbsencePaidLeave          AbsenceCode = "001"
	AbsenceHalfDayOff         AbsenceCode = "002"
	AbsenceSpecialLeave       AbsenceCode = "003"
	AbsenceAbsent             AbsenceCode = "004"
	AbsenceSubstituteHoliday  AbsenceCode = "005"
	AbsenceCompanyEvent       AbsenceCode = "006"
	AbsenceCompensatoryDayOff AbsenceCode = "007"

	AbsenceUnknown AbsenceCode = "???"
)

type absenceInfo struct {
	caption string
	allDay  bool
	partial bool
}

var absences = map[AbsenceCode]absenceInfo{
	AbsenceNone:               {caption: "None"},
	AbsencePaidLeave:          {caption: "Paid leave (all day)", allDay: true},
	AbsenceHalfDayOff:         {caption: "Half-day off", partial: true},
	AbsenceSpecialLeave:       {caption: "Special leave", allDay: true},
	AbsenceAbsent:             {caption: "Absence", allDay: true},
	AbsenceSubstituteHoliday:  {caption: "Substitute holiday", allDay: true},
	AbsenceCompanyEvent:       {caption: "Company event", partial: true},
	AbsenceCompensatoryDayOff: {caption: "Compensatory day off", allDay: true},
}

// ParseAbsenceCode maps a stored code to its variant. An empty code means
// no absence; anything else outside the table is AbsenceUnknown.
func ParseAbsenceCode(code string) AbsenceCode {
	if code == "" {
		return AbsenceNone
	}
	if _, ok := absences[AbsenceCode(code)]; ok {
		return AbsenceCode(code)
	}
	return AbsenceUnknown
}

func (c AbsenceCode) IsKnown() bool {
	_, ok := absences[c]
	return ok
}

func (c AbsenceCode) Caption() string {
	if info, ok := absences[c]; ok {
		return info.caption
	}
	return "Unknown"
}

// IsAllDay reports whether the code forbids any working-time fields.
func (c AbsenceCode) IsAllDay() bool {
	return absences[c].allDay
}

// IsPartialDay is true for half-day off and company events, which may be
// recorded with or without a full set of working times.
func (c AbsenceCode) IsPartialDay() bool {
	return absences[c].partial
}

// AllAbsenceCodes lists the known codes in code order.
func AllAbsenceCodes() []AbsenceCode {
	return []AbsenceCode{
		AbsenceNone,
		AbsencePaidLeave,
		AbsenceHalfDayOff,
		AbsenceSpecialLeave,
		AbsenceAbsent,
		AbsenceSubstituteHoliday,
		AbsenceCompanyEvent,
		AbsenceCompensatoryDayOff,
	}
}

// WorkStyle is where the day was worked.
type WorkStyle string

const (
	WorkStyleNone     WorkStyle = "0"
	WorkStyleOffice   WorkStyle = "1"
	WorkStyleTelework WorkStyle = "2"

	WorkStyleUnknown WorkStyle = "?"
)

var workStyles = map[WorkStyle]string{
	WorkStyleNone:     "None",
	WorkStyleOffice:   "Office",
	WorkStyleTelework: "Telework",
}

// ParseWorkStyle maps a stored code to its variant; empty means none.
func ParseWorkStyle(code string) WorkStyle {
	if code == "" {
		return WorkStyleNone
	}
	if _, ok := workStyles[WorkStyle(code)]; ok {
		return WorkStyle(code)
	}
	return WorkStyleUnknown
}

func (w WorkStyle) IsKnown() bool {
	_, ok := workStyles[w]
	return ok
}

func (w WorkStyle) Caption() string {
	if c, ok := workStyles[w]; ok {
		return c
	}
	return "Unknown"
}
