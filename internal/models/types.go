package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date stored in a DATE column.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > 10 {
		raw = raw[:10]
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether d names a real calendar day.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Year > 9999 {
		return false
	}
	return DateOf(d.Time()) == d
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall clock time with a fixed UTC offset, stored in a
// TIME WITH TIME ZONE column.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
	// Offset is seconds east of UTC.
	Offset int
}

var timeOfDayLayouts = []string{
	"15:04:05Z07:00",
	"15:04:05Z07",
	"15:04:05Z0700",
	"15:04:05",
	"15:04Z07:00",
	"15:04",
}

func NewTimeOfDay(hour, minute, second int, offset time.Duration) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second, Offset: int(offset / time.Second)}
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	_, offset := t.Zone()
	return TimeOfDay{
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond() / 1000 * 1000,
		Offset:     offset,
	}
}

// ParseTimeOfDay accepts HH:MM[:SS[.ffffff]] with an optional Z, ±HH,
// ±HHMM or ±HH:MM offset. A missing offset means UTC.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("parse time of day %q", raw)
}

// Valid reports whether t is a wall clock time the column can hold
// exactly: microsecond precision and an offset in whole minutes.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 &&
		t.Minute >= 0 && t.Minute < 60 &&
		t.Second >= 0 && t.Second < 60 &&
		t.Nanosecond >= 0 && t.Nanosecond < int(time.Second) && t.Nanosecond%1000 == 0 &&
		t.Offset > -16*3600 && t.Offset < 16*3600 && t.Offset%60 == 0
}

// SecondsUTC is the number of seconds since midnight UTC, in [0, 86400).
func (t TimeOfDay) SecondsUTC() int {
	secs := t.Hour*3600 + t.Minute*60 + t.Second - t.Offset
	secs %= 86400
	if secs < 0 {
		secs += 86400
	}
	return secs
}

func (t TimeOfDay) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if micros := t.Nanosecond / 1000; micros > 0 {
		fmt.Fprintf(&b, ".%06d", micros)
	}
	sign := '+'
	offset := t.Offset
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	fmt.Fprintf(&b, "%c%02d:%02d", sign, offset/3600, offset%3600/60)
	return b.String()
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = TimeOfDayOf(v)
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case nil:
		*t = TimeOfDay{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Coordinates is a latitude/longitude pair persisted as "lat,lng". The
// zero value persists as an empty string.
//
// Raw keeps stored text that is not in that canonical form, including text
// that does not parse at all, so reading and re-writing a row leaves the
// column unchanged. When Raw is set it takes precedence over Lat and Lng.
type Coordinates struct {
	Lat float64
	Lng float64
	Raw string
}

func ParseCoordinates(raw string) (Coordinates, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Coordinates{}, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("coordinates %q: want \"lat,lng\"", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("coordinates %q: latitude: %w", raw, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("coordinates %q: longitude: %w", raw, err)
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

// CoordinatesFromText accepts any stored text. Canonical "lat,lng" text
// yields a plain pair; anything else is kept in Raw, with Lat and Lng
// filled in when the text still parses.
func CoordinatesFromText(text string) Coordinates {
	parsed, err := ParseCoordinates(text)
	if err != nil {
		return Coordinates{Raw: text}
	}
	if parsed.String() != text {
		parsed.Raw = text
	}
	return parsed
}

func (c Coordinates) IsZero() bool {
	return c == Coordinates{}
}

// Parsed returns the pair c stands for, failing when Raw is not lat,lng text.
func (c Coordinates) Parsed() (Coordinates, error) {
	if c.Raw == "" {
		return c, nil
	}
	return ParseCoordinates(c.Raw)
}

func (c Coordinates) Valid() bool {
	p, err := c.Parsed()
	if err != nil {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func (c Coordinates) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	if c.Lat == 0 && c.Lng == 0 {
		return ""
	}
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

func (c Coordinates) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan never rejects text; malformed values surface through Valid.
func (c *Coordinates) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*c = CoordinatesFromText(v)
	case []byte:
		*c = CoordinatesFromText(string(v))
	case nil:
		*c = Coordinates{}
	default:
		return fmt.Errorf("cannot scan %T into Coordinates", src)
	}
	return nil
}

func (c Coordinates) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Coordinates) UnmarshalText(text []byte) error {
	*c = CoordinatesFromText(string(text))
	return nil
}

// ImageRef points at a stored detection image: a relative storage path
// or an http(s) URL.
type ImageRef string

// VehicleType is the detected vehicle class. Any string fitting the
// column is accepted; the constants are the classes settings price.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleBus        VehicleType = "bus"
	VehicleTruck      VehicleType = "truck"
)

func (v VehicleType) normalized() VehicleType {
	return VehicleType(strings.ToLower(strings.TrimSpace(string(v))))
}

// SettingKind tells which settings table a SettingRef points into.
type SettingKind string

const (
	SettingCurrent SettingKind = "current"
	SettingFuture  SettingKind = "future"
)

func (k SettingKind) Valid() bool {
	return k == SettingCurrent || k == SettingFuture
}

// OrDefault maps the empty kind to SettingCurrent, the column default.
func (k SettingKind) OrDefault() SettingKind {
	if k == "" {
		return SettingCurrent
	}
	return k
}

// SettingRef references a row of current_setting or future_setting.
type SettingRef struct {
	Kind SettingKind `db:"settingKind" yaml:"settingKind"`
	ID   int64       `db:"settingId" yaml:"settingId"`
}

func CurrentRef(id int64) SettingRef {
	return SettingRef{Kind: SettingCurrent, ID: id}
}

func FutureRef(id int64) SettingRef {
	return SettingRef{Kind: SettingFuture, ID: id}
}

// Normalized fills in the default kind.
func (r SettingRef) Normalized() SettingRef {
	r.Kind = r.Kind.OrDefault()
	return r
}

// Table is the table the reference points into.
func (r SettingRef) Table() string {
	if r.Kind.OrDefault() == SettingFuture {
		return "future_setting"
	}
	return "current_setting"
}

func (r SettingRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind.OrDefault(), r.ID)
}
