package rules

import (
	"time"

	"github.com/frahmantamala/campus-parking/internal"
)

// EligibilityRequest carries everything the permit eligibility check needs.
// HeldPermits is the driver's current permit count from the store; the
// evaluator itself never touches storage.
type EligibilityRequest struct {
	Class          DriverClass
	HeldPermits    int
	PermitType     string
	ZoneID         string
	SpaceType      string
	StartDate      time.Time
	ExpirationDate time.Time
	ExpirationTime string
}

// EligibilityResult is the normalized, fully validated candidate permit the
// caller may persist.
type EligibilityResult struct {
	PermitType string
	ZoneID     string
	SpaceType  string

	// Restricted marks that the request consumed the last slot before
	// quota, so only a special event or park & ride permit was allowed.
	Restricted bool
}

// EvaluateEligibility decides whether a driver may be issued the requested
// permit. A nil error means accept; otherwise the error identifies the one
// rule that rejected the request. Checks run in a fixed order: quota,
// permit type (restricted slot first), zone against class, space type,
// date range.
func EvaluateEligibility(req EligibilityRequest) (*EligibilityResult, error) {
	quota := req.Class.PermitQuota()

	if req.HeldPermits >= quota {
		return nil, internal.ErrQuotaExceeded
	}

	restricted := req.Class != ClassVisitor && req.HeldPermits == quota-1

	permitType, known := NormalizePermitType(req.PermitType)
	if restricted {
		if !IsRestrictedSlotType(permitType) {
			return nil, internal.ErrRestrictedSlotPermitType
		}
	} else if !known {
		return nil, internal.ErrInvalidPermitType
	}

	zoneID, _ := NormalizeZoneID(req.ZoneID)
	if !IsValidZone(req.Class, zoneID) {
		return nil, internal.ErrInvalidZoneForClass
	}

	spaceType, ok := NormalizeSpaceType(req.SpaceType)
	if !ok {
		return nil, internal.ErrInvalidSpaceType
	}

	if req.StartDate.IsZero() || req.ExpirationDate.IsZero() {
		return nil, internal.ErrInvalidDateRange
	}
	if !DateAfter(req.ExpirationDate, req.StartDate) {
		return nil, internal.ErrInvalidDateRange
	}
	if !ValidClock(req.ExpirationTime) {
		return nil, internal.ErrInvalidDateRange
	}

	return &EligibilityResult{
		PermitType: permitType,
		ZoneID:     zoneID,
		SpaceType:  spaceType,
		Restricted: restricted,
	}, nil
}
