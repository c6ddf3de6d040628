package models

import (
	"testing"
)

// Every pairing of an existing format against an incoming one, per the
// compatibility rule: "Whole Day" excludes everything including itself;
// other formats exclude only themselves and "Whole Day".
func TestDayFormatPolicyPairs(t *testing.T) {
	cases := []struct {
		existing DayFormat
		incoming DayFormat
		allowed  bool
	}{
		{FormatWholeDay, FormatWholeDay, false},
		{FormatWholeDay, FormatDay, false},
		{FormatWholeDay, FormatNight, false},
		{FormatWholeDay, FormatOvernight, false},

		{FormatDay, FormatWholeDay, false},
		{FormatDay, FormatDay, false},
		{FormatDay, FormatNight, true},
		{FormatDay, FormatOvernight, true},

		{FormatNight, FormatWholeDay, false},
		{FormatNight, FormatDay, true},
		{FormatNight, FormatNight, false},
		{FormatNight, FormatOvernight, true},

		{FormatOvernight, FormatWholeDay, false},
		{FormatOvernight, FormatDay, true},
		{FormatOvernight, FormatNight, true},
		{FormatOvernight, FormatOvernight, false},
	}

	policy := DayFormatPolicy{}
	for _, tc := range cases {
		decision := policy.Allows([]DayFormat{tc.existing}, tc.incoming)
		if decision.Allowed != tc.allowed {
			t.Errorf("Allows([%s], %s) = %v, want %v", tc.existing, tc.incoming, decision.Allowed, tc.allowed)
		}
		if !decision.Allowed && decision.Reason == "" {
			t.Errorf("Allows([%s], %s) rejected without a reason", tc.existing, tc.incoming)
		}
	}
}

func TestDayFormatPolicyEmptySlot(t *testing.T) {
	policy := DayFormatPolicy{}
	for _, format := range DayFormats {
		if decision := policy.Allows(nil, format); !decision.Allowed {
			t.Errorf("Allows(nil, %s) rejected an empty slot: %s", format, decision.Reason)
		}
	}
}

func TestDayFormatPolicyMultipleExisting(t *testing.T) {
	policy := DayFormatPolicy{}

	// Day and Night both booked: Overnight still fits, everything else is taken.
	existing := []DayFormat{FormatDay, FormatNight}

	if decision := policy.Allows(existing, FormatOvernight); !decision.Allowed {
		t.Errorf("Overnight should fit alongside Day and Night: %s", decision.Reason)
	}
	if decision := policy.Allows(existing, FormatDay); decision.Allowed {
		t.Error("Day should conflict with an existing Day booking")
	}
	if decision := policy.Allows(existing, FormatNight); decision.Allowed {
		t.Error("Night should conflict with an existing Night booking")
	}
	if decision := policy.Allows(existing, FormatWholeDay); decision.Allowed {
		t.Error("Whole Day should conflict with any existing booking")
	}
}

func TestDayFormatPolicyRejectionReasons(t *testing.T) {
	policy := DayFormatPolicy{}

	cases := []struct {
		existing DayFormat
		incoming DayFormat
		reason   string
	}{
		{FormatDay, FormatWholeDay, ReasonWholeDayTaken},
		{FormatDay, FormatDay, ReasonDayTaken},
		{FormatNight, FormatNight, ReasonNightTaken},
		{FormatOvernight, FormatOvernight, ReasonOvernightTaken},
	}

	for _, tc := range cases {
		decision := policy.Allows([]DayFormat{tc.existing}, tc.incoming)
		if decision.Reason != tc.reason {
			t.Errorf("Allows([%s], %s) reason = %q, want %q", tc.existing, tc.incoming, decision.Reason, tc.reason)
		}
	}
}

// Formats the policy does not recognize pass through every branch, the
// same permissive behavior the table encodes. Strict rejection of unknown
// formats is the service's validation step, not the policy's.
func TestDayFormatPolicyUnknownFormat(t *testing.T) {
	policy := DayFormatPolicy{}

	if decision := policy.Allows([]DayFormat{FormatWholeDay}, DayFormat("Brunch")); !decision.Allowed {
		t.Errorf("unknown incoming format should not be rejected by the policy: %s", decision.Reason)
	}
	if decision := policy.Allows([]DayFormat{DayFormat("Brunch")}, FormatNight); !decision.Allowed {
		t.Errorf("unknown existing format should not block a recognized one: %s", decision.Reason)
	}
}

func TestDayFormatRecognized(t *testing.T) {
	for _, format := range DayFormats {
		if !format.Recognized() {
			t.Errorf("%s should be recognized", format)
		}
	}
	if DayFormat("Brunch").Recognized() {
		t.Error("Brunch should not be recognized")
	}
	if DayFormat("").Recognized() {
		t.Error("empty format should not be recognized")
	}
}
