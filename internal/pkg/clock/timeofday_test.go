package clock

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  TimeOfDay
		ok    bool
	}{
		{"00:00:00", 0, true},
		{"09:00:00", 9 * 3600, true},
		{"12:30:15", 12*3600 + 30*60 + 15, true},
		{"23:59:59", 23*3600 + 59*60 + 59, true},
		{"24:00:00", 0, false},
		{"12:60:00", 0, false},
		{"12:00", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.input)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("ParseTimeOfDay(%q) = %v, %v, want %v", c.input, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseTimeOfDay(%q) = %v, want error", c.input, got)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	tod, err := ParseTimeOfDay("09:05:01")
	if err != nil {
		t.Fatal(err)
	}
	if got := tod.String(); got != "09:05:01" {
		t.Errorf("String() = %q, want %q", got, "09:05:01")
	}
}

func TestTimeOfDayAt(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatal(err)
	}

	tod, _ := ParseTimeOfDay("09:00:00")
	// 01:30 UTC is 08:30 in Jakarta (UTC+7), so the composed instant must
	// land on the same Jakarta calendar day.
	ref := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)
	got := tod.At(ref, jakarta)

	want := time.Date(2025, 3, 10, 9, 0, 0, 0, jakarta)
	if !got.Equal(want) {
		t.Errorf("At() = %v, want %v", got, want)
	}

	// 20:00 UTC is already 03:00 next day in Jakarta.
	ref = time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	got = tod.At(ref, jakarta)
	want = time.Date(2025, 3, 11, 9, 0, 0, 0, jakarta)
	if !got.Equal(want) {
		t.Errorf("At() across midnight = %v, want %v", got, want)
	}
}

func TestDayStart(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatal(err)
	}

	ref := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC) // 03:00 Mar 11 Jakarta
	got := DayStart(ref, jakarta)
	want := time.Date(2025, 3, 11, 0, 0, 0, 0, jakarta)
	if !got.Equal(want) {
		t.Errorf("DayStart() = %v, want %v", got, want)
	}
}

func TestSaturatingSeconds(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := SaturatingSeconds(base.Add(90*time.Second), base); got != 90 {
		t.Errorf("SaturatingSeconds(+90s) = %d, want 90", got)
	}
	// Skewed clocks must clamp to zero, never go negative.
	if got := SaturatingSeconds(base.Add(-time.Minute), base); got != 0 {
		t.Errorf("SaturatingSeconds(-1m) = %d, want 0", got)
	}
	if got := SaturatingSeconds(base, base); got != 0 {
		t.Errorf("SaturatingSeconds(0) = %d, want 0", got)
	}
}

func TestDiffSeconds(t *testing.T) {
	a, _ := ParseTimeOfDay("12:30:00")
	b, _ := ParseTimeOfDay("12:00:00")

	if got := DiffSeconds(a, b); got != 1800 {
		t.Errorf("DiffSeconds(a, b) = %d, want 1800", got)
	}
	if got := DiffSeconds(b, a); got != 0 {
		t.Errorf("DiffSeconds(b, a) = %d, want 0", got)
	}
}

func TestFixedClock(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clk := NewFixed(base)

	if !clk.Now().Equal(base) {
		t.Errorf("Now() = %v, want %v", clk.Now(), base)
	}
	clk.Advance(time.Hour)
	if !clk.Now().Equal(base.Add(time.Hour)) {
		t.Errorf("Now() after Advance = %v, want %v", clk.Now(), base.Add(time.Hour))
	}
	clk.Set(base)
	if !clk.Now().Equal(base) {
		t.Errorf("Now() after Set = %v, want %v", clk.Now(), base)
	}
}
