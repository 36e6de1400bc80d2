package driver

import (
	"regexp"
	"strings"
	"time"

	"github.com/frahmantamala/campus-parking/internal"
	driverDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/driver"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
)

type Driver struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Class     string    `json:"class"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var driverIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,255}$`)

// NewDriver validates field shape and returns a driver with a normalized
// class. Identity is immutable after creation; name and class are not.
func NewDriver(id, name, class string) (*Driver, error) {
	id = strings.TrimSpace(id)
	if !driverIDPattern.MatchString(id) {
		return nil, internal.NewValidationFieldError("id", "driver id must be 1-255 alphanumeric characters", internal.ErrCodeInvalidDriverID)
	}
	if strings.TrimSpace(name) == "" {
		return nil, internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	parsed, ok := rules.ParseDriverClass(class)
	if !ok {
		return nil, internal.ErrInvalidDriverClass
	}

	now := time.Now()
	return &Driver{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Class:     string(parsed),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RuleClass exposes the driver's class in the rule engine's vocabulary.
func (d *Driver) RuleClass() rules.DriverClass {
	return rules.DriverClass(d.Class)
}

func ToDataModel(d *Driver) *driverDatamodel.Driver {
	return &driverDatamodel.Driver{
		ID:        d.ID,
		Name:      d.Name,
		Class:     d.Class,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModel(d *driverDatamodel.Driver) *Driver {
	return &Driver{
		ID:        d.ID,
		Name:      d.Name,
		Class:     d.Class,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModelSlice(drivers []*driverDatamodel.Driver) []*Driver {
	result := make([]*Driver, len(drivers))
	for i, d := range drivers {
		result[i] = FromDataModel(d)
	}
	return result
}
