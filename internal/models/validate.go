package models

import (
	"fmt"
	"net/netip"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"
)

// FieldError describes a value rejected before it reaches storage.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func fieldErr(field, format string, args ...interface{}) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func checkWidth(field, value string, width int) error {
	if n := utf8.RuneCountInString(value); n > width {
		return fieldErr(field, "%d characters exceeds width %d", n, width)
	}
	return nil
}

func checkDate(field string, d Date) error {
	if !d.Valid() {
		return fieldErr(field, "invalid date %s", d)
	}
	return nil
}

func checkTime(field string, t TimeOfDay) error {
	if !t.Valid() {
		return fieldErr(field, "invalid time %s", t)
	}
	return nil
}

func checkCoords(field string, c Coordinates) error {
	p, err := c.Parsed()
	if err != nil {
		return fieldErr(field, "malformed coordinates %q", c.Raw)
	}
	if !c.Valid() {
		return fieldErr(field, "coordinates %s out of range", p)
	}
	return checkWidth(field, c.String(), CoordsWidth)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (u User) Validate() error {
	return firstErr(
		checkWidth("email", u.Email, EmailWidth),
		checkWidth("username", u.Username, UsernameWidth),
		checkWidth("firstName", u.FirstName, PersonNameWidth),
		checkWidth("lastName", u.LastName, PersonNameWidth),
		checkWidth("password", u.Password, PasswordWidth),
	)
}

func (c Camera) Validate() error {
	if err := checkWidth("id", c.ID, CameraIDWidth); err != nil {
		return err
	}
	if _, err := netip.ParseAddr(c.ID); err != nil {
		return fieldErr("id", "camera id %q is not an IP address", c.ID)
	}
	return firstErr(
		checkWidth("name", c.Name, CameraNameWidth),
		checkWidth("location", c.Location, CameraLocationWidth),
		checkCoords("originCoords", c.OriginCoords),
		checkCoords("destCoords", c.DestCoords),
	)
}

// Validate accepts the empty kind, which is stored as the column default.
func (r SettingRef) Validate() error {
	if !r.Kind.OrDefault().Valid() {
		return fieldErr("settingKind", "unknown setting kind %q", r.Kind)
	}
	return nil
}

func (d DetectedLicensePlate) Validate() error {
	return firstErr(
		d.SettingRef.Validate(),
		checkWidth("location", d.Location, DetectionLocationWidth),
		checkWidth("licenseNumber", d.LicenseNumber, LicenseNumberWidth),
		checkWidth("vehicleType", string(d.VehicleType), VehicleTypeWidth),
		checkDate("date", d.Date),
		checkTime("time", d.Time),
		d.Image.Validate(),
	)
}

func (r Rules) Validate() error {
	return firstErr(
		checkTime("hourFrom", r.HourFrom),
		checkTime("hourTo", r.HourTo),
		checkWidth("day", r.Day, DayWidth),
	)
}

func (s CurrentSetting) Validate() error {
	return s.Rules.Validate()
}

func (s FutureSetting) Validate() error {
	return firstErr(
		s.Rules.Validate(),
		checkDate("startDate", s.StartDate),
		checkTime("startTime", s.StartTime),
	)
}

func (c Congestion) Validate() error {
	return firstErr(
		checkWidth("location", c.Location, CongestionLocWidth),
		checkDate("date", c.Date),
		checkTime("time", c.Time),
	)
}

// Validate accepts an empty reference, an http(s) URL with a host, or a
// clean relative path that stays inside the storage root.
func (r ImageRef) Validate() error {
	raw := string(r)
	if err := checkWidth("image", raw, ImageWidth); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			return fieldErr("image", "invalid image URL %q", raw)
		}
		return nil
	}
	if strings.Contains(raw, "\\") || strings.HasPrefix(raw, "/") || path.Clean(raw) != raw ||
		raw == ".." || strings.HasPrefix(raw, "../") {
		return fieldErr("image", "invalid image path %q", raw)
	}
	return nil
}
