package models

// DayFormat tags a reservation with the part of the calendar day it occupies.
type DayFormat string

const (
	FormatWholeDay  DayFormat = "Whole Day"
	FormatDay       DayFormat = "Day"
	FormatNight     DayFormat = "Night"
	FormatOvernight DayFormat = "Overnight"
)

// DayFormats lists the recognized day formats in wire order.
var DayFormats = []DayFormat{FormatWholeDay, FormatDay, FormatNight, FormatOvernight}

func (f DayFormat) Recognized() bool {
	switch f {
	case FormatWholeDay, FormatDay, FormatNight, FormatOvernight:
		return true
	}
	return false
}

// Conflict reasons surfaced to the caller on rejection.
const (
	ReasonWholeDayTaken  = "The venue is already booked for the whole day. Please choose another day or time format."
	ReasonDayTaken       = "The venue is already booked for the whole day or day format. Please choose another time format or date."
	ReasonNightTaken     = "The venue is already booked for the whole day or night format. Please choose another time format or date."
	ReasonOvernightTaken = "The venue is already booked for the whole day or overnight format. Please choose another time format or date."
)

// Decision is the outcome of a slot-policy evaluation. Rejections are
// values, not errors.
type Decision struct {
	Allowed bool
	Reason  string
}

// SlotPolicy decides whether an incoming day format can coexist with the
// day formats already booked on the same venue+date slot.
type SlotPolicy interface {
	Allows(existing []DayFormat, incoming DayFormat) Decision
}

// DayFormatPolicy is the pure compatibility rule over day formats:
// "Whole Day" is exclusive with everything, itself included; every other
// format is exclusive only with itself and with "Whole Day". Formats the
// policy does not recognize are treated as compatible with everything;
// strict validation is the caller's job.
type DayFormatPolicy struct{}

func (DayFormatPolicy) Allows(existing []DayFormat, incoming DayFormat) Decision {
	switch incoming {
	case FormatWholeDay:
		if len(existing) > 0 {
			return Decision{Reason: ReasonWholeDayTaken}
		}
	case FormatDay:
		if hasAny(existing, FormatWholeDay, FormatDay) {
			return Decision{Reason: ReasonDayTaken}
		}
	case FormatNight:
		if hasAny(existing, FormatWholeDay, FormatNight) {
			return Decision{Reason: ReasonNightTaken}
		}
	case FormatOvernight:
		if hasAny(existing, FormatWholeDay, FormatOvernight) {
			return Decision{Reason: ReasonOvernightTaken}
		}
	}
	return Decision{Allowed: true}
}

func hasAny(formats []DayFormat, blocked ...DayFormat) bool {
	for _, f := range formats {
		for _, b := range blocked {
			if f == b {
				return true
			}
		}
	}
	return false
}
