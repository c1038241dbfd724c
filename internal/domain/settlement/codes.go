package settlement

// Form distinguishes regular commuting from business trips.
type Form string

const (
	FormCommuter Form = "1"
	FormTrip     Form = "2"

	FormUnknown Form = "?"
)

var forms = map[Form]string{
	FormCommuter: "Commuter",
	FormTrip:     "Business trip",
}

func ParseForm(code string) Form {
	if _, ok := forms[Form(code)]; ok {
		return Form(code)
	}
	return FormUnknown
}

func (f Form) IsKnown() bool {
	_, ok := forms[f]
	return ok
}

func (f Form) Caption() string {
	if c, ok := forms[f]; ok {
		return c
	}
	return "Unknown"
}

// Method is how the fare was used.
type Method string

const (
	MethodOneWay    Method = "1"
	MethodRoundTrip Method = "2"
	MethodStay      Method = "3"

	MethodUnknown Method = "?"
)

var methods = map[Method]string{
	MethodOneWay:    "One way",
	MethodRoundTrip: "Round trip",
	MethodStay:      "Stay",
}

func ParseMethod(code string) Method {
	if _, ok := methods[Method(code)]; ok {
		return Method(code)
	}
	return MethodUnknown
}

func (m Method) IsKnown() bool {
	_, ok := methods[m]
	return ok
}

func (m Method) Caption() string {
	if c, ok := methods[m]; ok {
		return c
	}
	return "Unknown"
}

// Multiplier is how many times the fare counts towards the total.
func (m Method) Multiplier() int64 {
	if m == MethodRoundTrip {
		return 2
	}
	return 1
}
