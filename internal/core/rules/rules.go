// Package rules holds the permit eligibility, vehicle assignment and
// violation detection logic. Everything here is pure: no storage, no HTTP,
// no clocks beyond the values callers pass in. Services feed it counts and
// candidate requests and branch on the typed outcome.
package rules

import (
	"strings"
	"time"
)

type DriverClass string

const (
	ClassEmployee DriverClass = "employee"
	ClassStudent  DriverClass = "student"
	ClassVisitor  DriverClass = "visitor"
)

// ParseDriverClass normalizes user input to a known class.
func ParseDriverClass(s string) (DriverClass, bool) {
	switch DriverClass(strings.ToLower(strings.TrimSpace(s))) {
	case ClassEmployee:
		return ClassEmployee, true
	case ClassStudent:
		return ClassStudent, true
	case ClassVisitor:
		return ClassVisitor, true
	}
	return "", false
}

// PermitQuota is the maximum number of permits a driver of this class may
// hold, counting special event and park & ride permits.
func (c DriverClass) PermitQuota() int {
	switch c {
	case ClassEmployee:
		return 3
	case ClassStudent:
		return 2
	default:
		return 1
	}
}

// VehicleLimit is the maximum number of vehicles attachable to one logical
// permit (one permit ID, possibly several rows).
func (c DriverClass) VehicleLimit() int {
	if c == ClassEmployee {
		return 2
	}
	return 1
}

const (
	PermitTypeResidential  = "residential"
	PermitTypeCommuter     = "commuter"
	PermitTypePeakHours    = "peak hours"
	PermitTypeSpecialEvent = "special event"
	PermitTypeParkAndRide  = "park & ride"
)

var permitTypes = map[string]struct{}{
	PermitTypeResidential:  {},
	PermitTypeCommuter:     {},
	PermitTypePeakHours:    {},
	PermitTypeSpecialEvent: {},
	PermitTypeParkAndRide:  {},
}

// NormalizePermitType lowercases and trims input; ok reports whether the
// result is one of the five recognized types.
func NormalizePermitType(s string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(s))
	_, ok := permitTypes[t]
	return t, ok
}

// IsRestrictedSlotType reports whether the permit type may occupy the last
// slot before quota.
func IsRestrictedSlotType(t string) bool {
	return t == PermitTypeSpecialEvent || t == PermitTypeParkAndRide
}

const (
	SpaceTypeElectric   = "electric"
	SpaceTypeHandicap   = "handicap"
	SpaceTypeCompactCar = "compact car"
	SpaceTypeRegular    = "regular"
)

var spaceTypes = map[string]struct{}{
	SpaceTypeElectric:   {},
	SpaceTypeHandicap:   {},
	SpaceTypeCompactCar: {},
	SpaceTypeRegular:    {},
}

func NormalizeSpaceType(s string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(s))
	_, ok := spaceTypes[t]
	return t, ok
}

var zonesByClass = map[DriverClass][]string{
	ClassEmployee: {"A", "B", "C", "D"},
	ClassStudent:  {"AS", "BS", "CS", "DS"},
	ClassVisitor:  {"V"},
}

// AllZoneIDs is the full enumerated zone set, uppercase.
var AllZoneIDs = []string{"A", "B", "C", "D", "V", "AS", "BS", "CS", "DS"}

// NormalizeZoneID uppercases input; ok reports membership in the fixed set.
func NormalizeZoneID(s string) (string, bool) {
	z := strings.ToUpper(strings.TrimSpace(s))
	for _, known := range AllZoneIDs {
		if z == known {
			return z, true
		}
	}
	return z, false
}

// IsValidZone reports whether a class may park in the given zone.
func IsValidZone(class DriverClass, zoneID string) bool {
	z := strings.ToUpper(strings.TrimSpace(zoneID))
	for _, allowed := range zonesByClass[class] {
		if z == allowed {
			return true
		}
	}
	return false
}

// ClockLayout is the wire format for times of day. Fixed-width, so lexical
// comparison of two valid clock strings orders them correctly.
const ClockLayout = "15:04:05"

func ValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// SameDate compares two timestamps at date granularity.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateAfter reports whether a falls on a strictly later calendar day than b.
func DateAfter(a, b time.Time) bool {
	if SameDate(a, b) {
		return false
	}
	return a.After(b)
}
