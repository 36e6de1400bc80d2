package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/campus-parking/internal/core/rules"
)

const (
	EventTypePermitIssued    = "permit.issued"
	EventTypeCitationCreated = "citation.created"
)

type PermitIssuedEvent struct {
	BaseEvent
	PermitID   string `json:"permit_id"`
	DriverID   string `json:"driver_id"`
	PermitType string `json:"permit_type"`
	ZoneID     string `json:"zone_id"`
}

func NewPermitIssuedEvent(permitID, driverID, permitType, zoneID string) *PermitIssuedEvent {
	return &PermitIssuedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePermitIssued,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"permit_id":   permitID,
				"driver_id":   driverID,
				"permit_type": permitType,
				"zone_id":     zoneID,
			},
		},
		PermitID:   permitID,
		DriverID:   driverID,
		PermitType: permitType,
		ZoneID:     zoneID,
	}
}

type CitationCreatedEvent struct {
	BaseEvent
	CitationID     int64             `json:"citation_id"`
	CarLicense     string            `json:"car_license"`
	LotName        string            `json:"lot_name"`
	Fee            float64           `json:"fee"`
	VehicleCreated bool              `json:"vehicle_created"`
	Violations     []rules.Violation `json:"violations"`
}

func NewCitationCreatedEvent(citationID int64, carLicense, lotName string, fee float64, vehicleCreated bool, violations []rules.Violation) *CitationCreatedEvent {
	kinds := make([]string, len(violations))
	for i, v := range violations {
		kinds[i] = string(v.Kind)
	}
	return &CitationCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCitationCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"citation_id":     citationID,
				"car_license":     carLicense,
				"lot_name":        lotName,
				"fee":             fee,
				"vehicle_created": vehicleCreated,
				"violations":      kinds,
			},
		},
		CitationID:     citationID,
		CarLicense:     carLicense,
		LotName:        lotName,
		Fee:            fee,
		VehicleCreated: vehicleCreated,
		Violations:     violations,
	}
}
