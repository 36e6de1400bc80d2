package rules

import "github.com/frahmantamala/campus-parking/internal"

// AttachmentAction tells the caller how to persist a vehicle attachment:
// update the permit row whose vehicle slot is empty, or insert a second row
// sharing the permit ID (the employee two-vehicle case).
type AttachmentAction int

const (
	FillExistingRow AttachmentAction = iota
	CreateAdditionalRow
)

func (a AttachmentAction) String() string {
	if a == CreateAdditionalRow {
		return "create_additional_row"
	}
	return "fill_existing_row"
}

// EvaluateVehicleAttachment decides whether one more vehicle fits on a
// logical permit. permitRows is how many rows share the permit ID,
// attachedVehicles how many of those rows already carry a license.
func EvaluateVehicleAttachment(class DriverClass, permitRows, attachedVehicles int) (AttachmentAction, error) {
	if permitRows == 0 {
		return 0, internal.ErrPermitNotFound
	}

	if attachedVehicles >= class.VehicleLimit() {
		return 0, internal.ErrVehicleLimitReached
	}

	// Employee permit with a single row that already carries its vehicle:
	// the second vehicle needs its own row under the same permit ID.
	if class == ClassEmployee && attachedVehicles == 1 && permitRows == 1 {
		return CreateAdditionalRow, nil
	}

	if attachedVehicles < permitRows {
		return FillExistingRow, nil
	}

	// Every row carries a vehicle and no additional row is allowed.
	return 0, internal.ErrVehicleLimitReached
}
