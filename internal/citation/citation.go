package citation

import (
	"time"

	citationDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/citation"
)

// DateLayout is the wire format for citation dates.
const DateLayout = "2006-01-02"

const (
	StatusDue      = "DUE"
	StatusPaid     = "PAID"
	StatusAppealed = "APPEALED"
)

// Citation is one recorded ticket. Payment status only ever moves away
// from DUE, never back.
type Citation struct {
	ID            int64     `json:"id"`
	CarLicense    string    `json:"car_license"`
	LotName       string    `json:"lot_name"`
	Category      string    `json:"category"`
	Fee           float64   `json:"fee"`
	PaymentStatus string    `json:"payment_status"`
	CitationDate  time.Time `json:"citation_date"`
	CitationTime  string    `json:"citation_time"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToDataModel(c *Citation) *citationDatamodel.Citation {
	return &citationDatamodel.Citation{
		ID:            c.ID,
		CarLicense:    c.CarLicense,
		LotName:       c.LotName,
		Category:      c.Category,
		Fee:           c.Fee,
		PaymentStatus: c.PaymentStatus,
		CitationDate:  c.CitationDate,
		CitationTime:  c.CitationTime,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromDataModel(c *citationDatamodel.Citation) *Citation {
	return &Citation{
		ID:            c.ID,
		CarLicense:    c.CarLicense,
		LotName:       c.LotName,
		Category:      c.Category,
		Fee:           c.Fee,
		PaymentStatus: c.PaymentStatus,
		CitationDate:  c.CitationDate,
		CitationTime:  c.CitationTime,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*citationDatamodel.Citation) []*Citation {
	result := make([]*Citation, len(rows))
	for i, c := range rows {
		result[i] = FromDataModel(c)
	}
	return result
}
