package models

import "strings"

// Detects reports whether vehicles of type v are detected under r.
func (r Rules) Detects(v VehicleType) bool {
	switch v.normalized() {
	case VehicleCar:
		return r.DetectCar
	case VehicleMotorcycle:
		return r.DetectMotorcycle
	case VehicleBus:
		return r.DetectBus
	case VehicleTruck:
		return r.DetectTruck
	default:
		return false
	}
}

// PriceFor returns the configured price for v. ok is false for vehicle
// types without a price column.
func (r Rules) PriceFor(v VehicleType) (price float64, ok bool) {
	switch v.normalized() {
	case VehicleCar:
		return r.CarPrice, true
	case VehicleMotorcycle:
		return r.MotorcyclePrice, true
	case VehicleBus:
		return r.BusPrice, true
	case VehicleTruck:
		return r.TruckPrice, true
	default:
		return 0, false
	}
}

// Overlaps reports whether r and other apply to the same day and their
// hour windows intersect. Windows with HourFrom after HourTo wrap past
// midnight; equal bounds are an empty window.
func (r Rules) Overlaps(other Rules) bool {
	if !strings.EqualFold(strings.TrimSpace(r.Day), strings.TrimSpace(other.Day)) {
		return false
	}
	for _, a := range r.spans() {
		for _, b := range other.spans() {
			if a[0] < b[1] && b[0] < a[1] {
				return true
			}
		}
	}
	return false
}

func (r Rules) spans() [][2]int {
	from, to := r.HourFrom.SecondsUTC(), r.HourTo.SecondsUTC()
	switch {
	case from < to:
		return [][2]int{{from, to}}
	case from > to:
		return [][2]int{{from, 86400}, {0, to}}
	default:
		return nil
	}
}
