package models

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-01-01", NewDate(2024, time.January, 1), false},
		{"2024-02-29T00:00:00Z", NewDate(2024, time.February, 29), false},
		{" 1999-12-31 ", NewDate(1999, time.December, 31), false},
		{"2024-13-01", Date{}, true},
		{"yesterday", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateScan(t *testing.T) {
	want := NewDate(2024, time.January, 1)
	sources := []interface{}{
		"2024-01-01",
		[]byte("2024-01-01"),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, src := range sources {
		var d Date
		if err := d.Scan(src); err != nil {
			t.Fatalf("Scan(%T) error: %v", src, err)
		}
		if d != want {
			t.Errorf("Scan(%T) = %v, want %v", src, d, want)
		}
	}
	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
	if v, _ := want.Value(); v != "2024-01-01" {
		t.Errorf("Value() = %v", v)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
	}{
		{"08:30:00+00:00", NewTimeOfDay(8, 30, 0, 0)},
		{"08:30:00+00", NewTimeOfDay(8, 30, 0, 0)},
		{"08:30:00Z", NewTimeOfDay(8, 30, 0, 0)},
		{"08:30:00", NewTimeOfDay(8, 30, 0, 0)},
		{"08:30", NewTimeOfDay(8, 30, 0, 0)},
		{"17:05:09+05:30", NewTimeOfDay(17, 5, 9, 5*time.Hour+30*time.Minute)},
		{"23:59:59-0800", NewTimeOfDay(23, 59, 59, -8*time.Hour)},
		{"12:00:00.250000+01:00", TimeOfDay{Hour: 12, Nanosecond: 250000000, Offset: 3600}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
	if _, err := ParseTimeOfDay("noon"); err == nil {
		t.Error("expected error for noon")
	}
}

func TestTimeOfDayString(t *testing.T) {
	tests := []struct {
		in   TimeOfDay
		want string
	}{
		{NewTimeOfDay(7, 0, 0, 0), "07:00:00+00:00"},
		{NewTimeOfDay(17, 5, 9, 5*time.Hour+30*time.Minute), "17:05:09+05:30"},
		{NewTimeOfDay(1, 2, 3, -3*time.Hour), "01:02:03-03:00"},
		{TimeOfDay{Hour: 12, Nanosecond: 250000000}, "12:00:00.250000+00:00"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		parsed, err := ParseTimeOfDay(tt.want)
		if err != nil || parsed != tt.in {
			t.Errorf("ParseTimeOfDay(%q) = %+v, %v; want %+v", tt.want, parsed, err, tt.in)
		}
	}
}

func TestTimeOfDayScanTime(t *testing.T) {
	zone := time.FixedZone("", -5*3600)
	var got TimeOfDay
	if err := got.Scan(time.Date(0, 1, 1, 9, 15, 0, 1500, zone)); err != nil {
		t.Fatal(err)
	}
	want := TimeOfDay{Hour: 9, Minute: 15, Nanosecond: 1000, Offset: -5 * 3600}
	if got != want {
		t.Errorf("Scan() = %+v, want %+v", got, want)
	}
}

func TestSecondsUTC(t *testing.T) {
	if got := NewTimeOfDay(1, 0, 0, 2*time.Hour).SecondsUTC(); got != 23*3600 {
		t.Errorf("SecondsUTC() = %d, want %d", got, 23*3600)
	}
	if got := NewTimeOfDay(23, 0, 0, -2*time.Hour).SecondsUTC(); got != 3600 {
		t.Errorf("SecondsUTC() = %d, want %d", got, 3600)
	}
}

func TestCoordinates(t *testing.T) {
	c, err := ParseCoordinates("40.7128, -74.006")
	if err != nil {
		t.Fatal(err)
	}
	if c != (Coordinates{Lat: 40.7128, Lng: -74.006}) {
		t.Errorf("ParseCoordinates = %+v", c)
	}
	if got := c.String(); got != "40.7128,-74.006" {
		t.Errorf("String() = %q", got)
	}

	var scanned Coordinates
	if err := scanned.Scan([]byte("51.5,-0.12")); err != nil {
		t.Fatal(err)
	}
	if scanned != (Coordinates{Lat: 51.5, Lng: -0.12}) {
		t.Errorf("Scan() = %+v", scanned)
	}
	if err := scanned.Scan(nil); err != nil || !scanned.IsZero() {
		t.Errorf("Scan(nil) = %+v, %v", scanned, err)
	}
	if v, _ := (Coordinates{}).Value(); v != "" {
		t.Errorf("zero Value() = %q, want empty", v)
	}

	for _, bad := range []string{"40.7", "a,b", "1,2,3"} {
		if _, err := ParseCoordinates(bad); err == nil {
			t.Errorf("ParseCoordinates(%q) expected error", bad)
		}
	}
}

func TestCoordinatesKeepStoredText(t *testing.T) {
	var c Coordinates
	if err := c.Scan("40.7128 N 74.0060 W"); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if got := c.String(); got != "40.7128 N 74.0060 W" {
		t.Errorf("String() = %q", got)
	}
	if v, _ := c.Value(); v != "40.7128 N 74.0060 W" {
		t.Errorf("Value() = %v", v)
	}
	if c.Valid() {
		t.Error("Valid() = true for unparsed text")
	}

	var spaced Coordinates
	if err := spaced.Scan([]byte("40.7128, -74.006")); err != nil {
		t.Fatal(err)
	}
	if spaced.Lat != 40.7128 || spaced.Lng != -74.006 || !spaced.Valid() {
		t.Errorf("Scan() = %+v", spaced)
	}
	if v, _ := spaced.Value(); v != "40.7128, -74.006" {
		t.Errorf("Value() = %v, want stored text unchanged", v)
	}

	var text Coordinates
	if err := text.UnmarshalText([]byte("somewhere")); err != nil {
		t.Errorf("UnmarshalText() error: %v", err)
	}
	if text.Raw != "somewhere" || text.Valid() {
		t.Errorf("UnmarshalText() = %+v", text)
	}
}

func TestTimeOfDayValid(t *testing.T) {
	tests := []struct {
		in   TimeOfDay
		want bool
	}{
		{NewTimeOfDay(8, 30, 0, 0), true},
		{NewTimeOfDay(17, 5, 9, 5*time.Hour+45*time.Minute), true},
		{TimeOfDay{Hour: 12, Nanosecond: 250000000}, true},
		{TimeOfDay{Hour: 12, Nanosecond: 1000}, true},
		{TimeOfDay{Hour: 12, Nanosecond: 1500}, false},
		{TimeOfDay{Hour: 1, Offset: 3630}, false},
		{NewTimeOfDay(1, 0, 0, time.Hour+30*time.Second), false},
		{TimeOfDay{Hour: 24}, false},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSettingRef(t *testing.T) {
	if got := FutureRef(4).Table(); got != "future_setting" {
		t.Errorf("Table() = %q", got)
	}
	if got := CurrentRef(4).Table(); got != "current_setting" {
		t.Errorf("Table() = %q", got)
	}
	if got := FutureRef(4).String(); got != "future:4" {
		t.Errorf("String() = %q", got)
	}
	defaulted := SettingRef{ID: 4}
	if got := defaulted.String(); got != "current:4" {
		t.Errorf("String() = %q", got)
	}
	if got := defaulted.Normalized(); got != CurrentRef(4) {
		t.Errorf("Normalized() = %+v", got)
	}
	if err := defaulted.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := (SettingRef{Kind: "past", ID: 4}).Validate(); err == nil {
		t.Error("expected error for unknown kind")
	}
}
