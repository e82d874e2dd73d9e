package sequence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jacksonMuller/codelessarm/pkg/robot"
)

// ErrStopped is the operator's stop signal from the prompter. It ends a
// recording normally; it is not a failure.
var ErrStopped = errors.New("stopped by operator")

// Arm is the subset of the bus adapter used by the recorder and player.
type Arm interface {
	Positions(ctx context.Context) (map[robot.JointName]int, error)
	Move(ctx context.Context, positions map[robot.JointName]int, moveTime time.Duration) error
	EnableTorque(ctx context.Context) error
	DisableTorque(ctx context.Context) error
	RelaxLimits(ctx context.Context, joint robot.JointName) error
}

// Prompter is the recorder's interactive surface.
type Prompter interface {
	// ConfirmStart blocks until the operator has posed the start position.
	ConfirmStart() error

	// DurationInput prompts for the seconds to reach the given step and
	// returns the raw text. It returns ErrStopped when the operator ends
	// the recording.
	DurationInput(step int) (string, error)
}

// Recorder captures a pose sequence from a human operator. Torque stays
// disabled for the whole capture window so the arm can be posed by hand,
// and is restored on every exit path.
type Recorder struct {
	arm    Arm
	store  *Store
	prompt Prompter
	out    io.Writer
	now    func() time.Time
}

// NewRecorder creates a recorder that persists through store.
func NewRecorder(arm Arm, store *Store, prompt Prompter, out io.Writer) *Recorder {
	return &Recorder{arm: arm, store: store, prompt: prompt, out: out, now: time.Now}
}

// Record runs one interactive capture session and persists the result
// under name, overwriting any existing sequence of the same name.
func (r *Recorder) Record(ctx context.Context, name string) error {
	if err := r.arm.DisableTorque(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Torque OFF - move the arm freely")

	defer func() {
		// Restore regardless of how the session ended.
		if err := r.arm.EnableTorque(context.Background()); err != nil {
			fmt.Fprintf(r.out, "Warning: failed to re-enable torque: %v\n", err)
			return
		}
		fmt.Fprintln(r.out, "Torque ON - arm under control")
	}()

	steps, err := r.capture(ctx)
	if err != nil && !errors.Is(err, ErrStopped) {
		return err
	}
	fmt.Fprintf(r.out, "Recording finished, captured %d position(s)\n", len(steps))

	if len(steps) > 1 {
		steps = append(steps, Step{
			Ordinal:   len(steps) + 1,
			Positions: maps.Clone(steps[0].Positions),
			Duration:  ClosingStepDuration,
		})
		fmt.Fprintf(r.out, "Added return to start as final step (%.1fs)\n", ClosingStepDuration)
	}

	path, err := r.store.Save(Sequence{
		Name:       name,
		RecordedAt: r.now().Format(TimestampLayout),
		Steps:      steps,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Saved to: %s\n", path)
	return nil
}

func (r *Recorder) capture(ctx context.Context) ([]Step, error) {
	if err := r.prompt.ConfirmStart(); err != nil {
		return nil, err
	}
	pos, err := r.arm.Positions(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(r.out, "START: %s\n", FormatSnapshot(pos))

	// The start pose has no meaningful timing.
	steps := []Step{{Ordinal: 1, Positions: pos, Duration: 0}}

	for {
		num := len(steps) + 1
		text, err := r.prompt.DurationInput(num)
		if err != nil {
			return steps, err
		}
		duration, err := ParseDuration(text)
		if err != nil {
			fmt.Fprintf(r.out, "%v\n", err)
			continue
		}

		pos, err := r.arm.Positions(ctx)
		if err != nil {
			return steps, err
		}
		desc := "FAST"
		if duration > 0 {
			desc = fmt.Sprintf("%gs", duration)
		}
		fmt.Fprintf(r.out, "Position %d: %s (%s)\n", num, FormatSnapshot(pos), desc)

		steps = append(steps, Step{Ordinal: num, Positions: pos, Duration: duration})
	}
}

// ParseDuration parses the operator's seconds input for a step. Zero means
// a fast move; negative and non-numeric input is rejected.
func ParseDuration(text string) (float64, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("invalid number %q", strings.TrimSpace(text))
	}
	if d < 0 {
		return 0, errors.New("duration cannot be negative")
	}
	return d, nil
}
