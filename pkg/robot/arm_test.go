package robot

import (
	"context"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Limit relaxation depends on the driver's typed limit API. If a driver
// upgrade drops or changes it, fail the build instead of silently losing
// the travel-limit writes.
var _ interface {
	SetPositionLimits(ctx context.Context, min, max int) error
} = (*feetech.Servo)(nil)
