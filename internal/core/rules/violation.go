package rules

import "time"

type ViolationKind string

const (
	ViolationExpiredPermit ViolationKind = "expired_permit"
	ViolationWrongLot      ViolationKind = "wrong_lot"
)

// Violation is one advisory flag raised while a citation is entered. It
// never blocks the citation.
type Violation struct {
	PermitID string        `json:"permit_id"`
	Kind     ViolationKind `json:"kind"`
}

// CitationFacts is the slice of a citation the detector needs.
type CitationFacts struct {
	LotName string
	Date    time.Time
	Time    string
}

// CitedPermit is one permit held by the cited vehicle.
type CitedPermit struct {
	PermitID       string
	ZoneID         string
	ExpirationDate time.Time
	ExpirationTime string
}

// ZoneLot maps a zone identifier to the lot it currently belongs to. The
// caller resolves these for every zone ID appearing on the permits.
type ZoneLot struct {
	ZoneID  string
	LotName string
}

// DetectViolations checks each permit independently and in order; one
// permit can raise both an expired flag and a wrong-lot flag. Expiration is
// compared at date granularity first, and by time of day only when the
// citation falls on the expiration date itself.
func DetectViolations(c CitationFacts, permits []CitedPermit, zones []ZoneLot) []Violation {
	var violations []Violation

	for _, p := range permits {
		if permitExpired(c, p) {
			violations = append(violations, Violation{PermitID: p.PermitID, Kind: ViolationExpiredPermit})
		}

		for _, z := range zones {
			if z.ZoneID != p.ZoneID {
				continue
			}
			if z.LotName != c.LotName {
				violations = append(violations, Violation{PermitID: p.PermitID, Kind: ViolationWrongLot})
				break
			}
		}
	}

	return violations
}

func permitExpired(c CitationFacts, p CitedPermit) bool {
	if DateAfter(c.Date, p.ExpirationDate) {
		return true
	}
	if SameDate(c.Date, p.ExpirationDate) {
		// fixed-width HH:MM:SS, lexical order is chronological order
		return c.Time > p.ExpirationTime
	}
	return false
}
