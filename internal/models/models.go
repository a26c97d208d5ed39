package models

import "fmt"

// Column widths of the persisted layout, counted in characters.
const (
	EmailWidth             = 100
	UsernameWidth          = 50
	PersonNameWidth        = 80
	PasswordWidth          = 255
	CameraIDWidth          = 50
	CameraNameWidth        = 255
	CameraLocationWidth    = 50
	CoordsWidth            = 255
	DetectionLocationWidth = 255
	LicenseNumberWidth     = 14
	VehicleTypeWidth       = 20
	ImageWidth             = 255
	DayWidth               = 20
	CongestionLocWidth     = 50
)

// User is an account with four independent capability flags. Password is
// an opaque credential string; hashing happens outside this layer.
type User struct {
	ID              int64  `db:"id" yaml:"id"`
	Email           string `db:"email" yaml:"email"`
	Username        string `db:"username" yaml:"username"`
	FirstName       string `db:"firstName" yaml:"firstName"`
	LastName        string `db:"lastName" yaml:"lastName"`
	IsAdmin         bool   `db:"isAdmin" yaml:"isAdmin"`
	CanChangeDetect bool   `db:"canChangeDetect" yaml:"canChangeDetect"`
	CanChangePrice  bool   `db:"canChangePrice" yaml:"canChangePrice"`
	CanEditHours    bool   `db:"canEditHours" yaml:"canEditHours"`
	CanDownload     bool   `db:"canDownload" yaml:"canDownload"`
	Password        string `db:"password" yaml:"password"`
}

// Capability names one of the user permission flags.
type Capability int

const (
	CapChangeDetect Capability = iota
	CapChangePrice
	CapEditHours
	CapDownload
)

func (c Capability) String() string {
	switch c {
	case CapChangeDetect:
		return "change-detection-settings"
	case CapChangePrice:
		return "change-pricing"
	case CapEditHours:
		return "edit-hours"
	case CapDownload:
		return "download-export"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// Can reports the flag for c. IsAdmin grants nothing on its own.
func (u User) Can(c Capability) bool {
	switch c {
	case CapChangeDetect:
		return u.CanChangeDetect
	case CapChangePrice:
		return u.CanChangePrice
	case CapEditHours:
		return u.CanEditHours
	case CapDownload:
		return u.CanDownload
	default:
		return false
	}
}

func (u User) String() string {
	return fmt.Sprintf("User(userId=%d, email=%s, username=%s, fullName=%s %s, isAdmin=%t, canChangeDetect=%t, canChangePrice=%t, canEditHours=%t, canDownload=%t)",
		u.ID, u.Email, u.Username, u.FirstName, u.LastName, u.IsAdmin,
		u.CanChangeDetect, u.CanChangePrice, u.CanEditHours, u.CanDownload)
}

// Camera is a detection point keyed by its IP address. Location matches
// DetectedLicensePlate.Location and Congestion.Location by string value.
type Camera struct {
	ID           string      `db:"id" yaml:"id"`
	Name         string      `db:"name" yaml:"name"`
	Location     string      `db:"location" yaml:"location"`
	OriginCoords Coordinates `db:"originCoords" yaml:"originCoords"`
	DestCoords   Coordinates `db:"destCoords" yaml:"destCoords"`
}

func (c Camera) String() string {
	return fmt.Sprintf("Camera(cameraId=%s, name=%s, location=%s, origin=%s, destination=%s)",
		c.ID, c.Name, c.Location, c.OriginCoords, c.DestCoords)
}

// DetectedLicensePlate is one detection event.
type DetectedLicensePlate struct {
	ID     int64 `db:"id" yaml:"id"`
	UserID int64 `db:"userId" yaml:"userId"`

	SettingRef `yaml:",inline"`

	Location      string      `db:"location" yaml:"location"`
	LicenseNumber string      `db:"licenseNumber" yaml:"licenseNumber"`
	VehicleType   VehicleType `db:"vehicleType" yaml:"vehicleType"`
	Price         float64     `db:"price" yaml:"price"`
	Date          Date        `db:"date" yaml:"date"`
	Time          TimeOfDay   `db:"time" yaml:"time"`
	Image         ImageRef    `db:"image" yaml:"image"`
}

func (d DetectedLicensePlate) String() string {
	return fmt.Sprintf("Detection(id=%d, userId=%d, setting=%s, location=%s, licenseNumber=%s, vehicleType=%s, price=%g, date=%s, time=%s, image=%s)",
		d.ID, d.UserID, d.SettingRef, d.Location, d.LicenseNumber, d.VehicleType, d.Price, d.Date, d.Time, d.Image)
}

// Rules are the columns shared by current and future settings.
type Rules struct {
	HourFrom         TimeOfDay `db:"hourFrom" yaml:"hourFrom"`
	HourTo           TimeOfDay `db:"hourTo" yaml:"hourTo"`
	Day              string    `db:"day" yaml:"day"`
	DetectCar        bool      `db:"detectCar" yaml:"detectCar"`
	DetectMotorcycle bool      `db:"detectMotorcycle" yaml:"detectMotorcycle"`
	DetectBus        bool      `db:"detectBus" yaml:"detectBus"`
	DetectTruck      bool      `db:"detectTruck" yaml:"detectTruck"`
	CarPrice         float64   `db:"carPrice" yaml:"carPrice"`
	MotorcyclePrice  float64   `db:"motorcyclePrice" yaml:"motorcyclePrice"`
	BusPrice         float64   `db:"busPrice" yaml:"busPrice"`
	TruckPrice       float64   `db:"truckPrice" yaml:"truckPrice"`
}

func (r Rules) String() string {
	return fmt.Sprintf("hourFrom=%s, hourTo=%s, day=%s, detectCar=%t, detectMotorcycle=%t, detectBus=%t, detectTruck=%t, carPrice=%g, motorcyclePrice=%g, busPrice=%g, truckPrice=%g",
		r.HourFrom, r.HourTo, r.Day, r.DetectCar, r.DetectMotorcycle, r.DetectBus, r.DetectTruck,
		r.CarPrice, r.MotorcyclePrice, r.BusPrice, r.TruckPrice)
}

// CurrentSetting is an active pricing rule set.
type CurrentSetting struct {
	ID int64 `db:"id" yaml:"id"`

	Rules `yaml:",inline"`
}

func (s CurrentSetting) String() string {
	return fmt.Sprintf("Setting(settingId=%d, %s)", s.ID, s.Rules)
}

// FutureSetting is a rule set scheduled to take effect at StartDate/StartTime.
type FutureSetting struct {
	ID int64 `db:"id" yaml:"id"`

	Rules `yaml:",inline"`

	StartDate Date      `db:"startDate" yaml:"startDate"`
	StartTime TimeOfDay `db:"startTime" yaml:"startTime"`
}

func (s FutureSetting) String() string {
	return fmt.Sprintf("Setting(settingId=%d, startDate=%s, startTime=%s, %s)", s.ID, s.StartDate, s.StartTime, s.Rules)
}

// Congestion is a point-in-time measurement for a location. The ratio is
// documented as 0 (free) to 1 (fully congested) but not constrained.
type Congestion struct {
	ID         int64     `db:"id" yaml:"id"`
	Location   string    `db:"location" yaml:"location"`
	Congestion float64   `db:"congestion" yaml:"congestion"`
	Date       Date      `db:"date" yaml:"date"`
	Time       TimeOfDay `db:"time" yaml:"time"`
}

func (c Congestion) RatioInRange() bool {
	return c.Congestion >= 0 && c.Congestion <= 1
}

func (c Congestion) String() string {
	return fmt.Sprintf("Congestion(id=%d, location=%s, congestion=%g, date=%s, time=%s)",
		c.ID, c.Location, c.Congestion, c.Date, c.Time)
}
