package robot

import (
	"context"
	"fmt"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

const baudRate = 1_000_000

// Arm is the bus adapter for a connected arm. It owns the serial port
// exclusively between Connect and Close; one in-flight command at a time.
type Arm struct {
	bus    *feetech.Bus
	group  *feetech.ServoGroup
	servos map[JointName]*feetech.Servo
}

// Connect opens the serial bus and binds a servo handle per joint.
func Connect(port string) (*Arm, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: baudRate,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	joints := AllJoints()
	ids := make([]int, 0, len(joints))
	servos := make(map[JointName]*feetech.Servo, len(joints))
	for _, name := range joints {
		id := ServoID(name)
		ids = append(ids, id)
		servos[name] = feetech.NewServo(bus, id, nil)
	}

	return &Arm{
		bus:    bus,
		group:  feetech.NewServoGroupByIDs(bus, ids...),
		servos: servos,
	}, nil
}

// Close releases the serial port.
func (a *Arm) Close() error {
	return a.bus.Close()
}

// EnableTorque enables torque on all servos so the arm holds its position.
func (a *Arm) EnableTorque(ctx context.Context) error {
	if err := a.group.EnableAll(ctx); err != nil {
		return fmt.Errorf("enable torque: %w", err)
	}
	return nil
}

// DisableTorque disables torque on all servos so the arm can be moved by hand.
func (a *Arm) DisableTorque(ctx context.Context) error {
	if err := a.group.DisableAll(ctx); err != nil {
		return fmt.Errorf("disable torque: %w", err)
	}
	return nil
}

// Positions reads the present position of every joint, in raw device
// units. The joints are read in one sync read; readings are sequential on
// the wire, not captured at a single instant.
func (a *Arm) Positions(ctx context.Context) (map[JointName]int, error) {
	raw, err := a.group.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	positions := make(map[JointName]int, len(raw))
	for _, name := range AllJoints() {
		pos, ok := raw[ServoID(name)]
		if !ok {
			return nil, fmt.Errorf("no position reading for %s", name)
		}
		positions[name] = pos
	}
	return positions, nil
}

// Move issues a goal time and goal position write for every joint in the
// snapshot. moveTime is the device-side time budget for the move; the call
// returns as soon as the writes are issued, it does not wait for motion.
func (a *Arm) Move(ctx context.Context, positions map[JointName]int, moveTime time.Duration) error {
	ms := int(moveTime.Milliseconds())
	for _, name := range AllJoints() {
		pos, ok := positions[name]
		if !ok {
			continue
		}
		if err := a.servos[name].SetPositionWithTime(ctx, clampPosition(pos), ms); err != nil {
			return fmt.Errorf("move %s: %w", name, err)
		}
	}
	return nil
}

// Position reads the present position of a single joint.
func (a *Arm) Position(ctx context.Context, joint JointName) (int, error) {
	s, ok := a.servos[joint]
	if !ok {
		return 0, fmt.Errorf("unknown joint %q", joint)
	}
	pos, err := s.Position(ctx)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", joint, err)
	}
	return pos, nil
}

// SetPosition writes a goal position for a single joint, clamped to the
// raw range.
func (a *Arm) SetPosition(ctx context.Context, joint JointName, pos int) error {
	s, ok := a.servos[joint]
	if !ok {
		return fmt.Errorf("unknown joint %q", joint)
	}
	if err := s.SetPosition(ctx, clampPosition(pos)); err != nil {
		return fmt.Errorf("write %s: %w", joint, err)
	}
	return nil
}

// Nudge offsets a joint's goal position from its present position,
// clamped to the raw range. Returns the commanded position.
func (a *Arm) Nudge(ctx context.Context, joint JointName, delta int) (int, error) {
	cur, err := a.Position(ctx, joint)
	if err != nil {
		return 0, err
	}
	goal := clampPosition(cur + delta)
	if err := a.SetPosition(ctx, joint, goal); err != nil {
		return 0, err
	}
	return goal, nil
}

// RelaxLimits widens one joint's travel limits to the full raw range.
// Limit writes are a best-effort safety relaxation: callers log failures
// and continue.
func (a *Arm) RelaxLimits(ctx context.Context, joint JointName) error {
	s, ok := a.servos[joint]
	if !ok {
		return fmt.Errorf("unknown joint %q", joint)
	}
	if err := s.SetPositionLimits(ctx, RawPositionMin, RawPositionMax); err != nil {
		return fmt.Errorf("write limits for %s: %w", joint, err)
	}
	return nil
}
