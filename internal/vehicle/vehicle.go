package vehicle

import (
	"regexp"
	"strings"
	"time"

	"github.com/frahmantamala/campus-parking/internal"
	vehicleDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/vehicle"
)

// Vehicles were first registered in 1886; nothing on campus predates the
// automobile.
const minVehicleYear = 1886

type Vehicle struct {
	License      string    `json:"license"`
	Model        string    `json:"model"`
	Color        string    `json:"color"`
	Manufacturer string    `json:"manufacturer"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var licensePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 \-\.&]{0,254}$`)

// NormalizeLicense uppercases and trims a plate for storage and lookup.
func NormalizeLicense(license string) string {
	return strings.ToUpper(strings.TrimSpace(license))
}

func NewVehicle(license, model, color, manufacturer string, year int) (*Vehicle, error) {
	license = NormalizeLicense(license)
	if !licensePattern.MatchString(license) {
		return nil, internal.NewValidationFieldError("license", "license must be 1-255 uppercase alphanumeric characters or symbols", internal.ErrCodeInvalidLicense)
	}
	if year < minVehicleYear || year > time.Now().Year()+1 {
		return nil, internal.NewValidationFieldError("year", "year is outside the plausible model-year range", internal.ErrCodeInvalidVehicleYear)
	}

	now := time.Now()
	return &Vehicle{
		License:      license,
		Model:        strings.TrimSpace(model),
		Color:        strings.TrimSpace(color),
		Manufacturer: strings.TrimSpace(manufacturer),
		Year:         year,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func ToDataModel(v *Vehicle) *vehicleDatamodel.Vehicle {
	return &vehicleDatamodel.Vehicle{
		License:      v.License,
		Model:        v.Model,
		Color:        v.Color,
		Manufacturer: v.Manufacturer,
		Year:         v.Year,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromDataModel(v *vehicleDatamodel.Vehicle) *Vehicle {
	return &Vehicle{
		License:      v.License,
		Model:        v.Model,
		Color:        v.Color,
		Manufacturer: v.Manufacturer,
		Year:         v.Year,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromDataModelSlice(vehicles []*vehicleDatamodel.Vehicle) []*Vehicle {
	result := make([]*Vehicle, len(vehicles))
	for i, v := range vehicles {
		result[i] = FromDataModel(v)
	}
	return result
}
