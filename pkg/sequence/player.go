package sequence

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jacksonMuller/codelessarm/pkg/robot"
)

// Timings are the playback pacing knobs. The defaults mirror measured
// STS3215 behavior: the servo takes roughly four times the commanded move
// time to settle, so the wait after a timed move is
// duration*TimedMultiplier + SettleBuffer. TimedMultiplier is a
// calibration value, not a derived constant.
type Timings struct {
	FastMove        time.Duration // device-side move time for fast moves
	StartSettle     time.Duration // wait after the initial positioning move
	FastWait        time.Duration // wait after a fast move
	TimedMultiplier float64       // wait scale for timed moves
	SettleBuffer    time.Duration // extra wait after a timed move
}

// DefaultTimings returns the pacing used by the stock tool.
func DefaultTimings() Timings {
	return Timings{
		FastMove:        800 * time.Millisecond,
		StartSettle:     1200 * time.Millisecond,
		FastWait:        time.Second,
		TimedMultiplier: 4.0,
		SettleBuffer:    time.Second,
	}
}

// moveTime returns the device-side time budget for a step. The first step
// is a positioning move and always moves fast, whatever its stored
// duration says.
func (t Timings) moveTime(first bool, duration float64) time.Duration {
	if first || duration == 0 {
		return t.FastMove
	}
	return time.Duration(duration * float64(time.Second))
}

// wait returns how long playback blocks after issuing a step's move.
func (t Timings) wait(first bool, duration float64) time.Duration {
	switch {
	case first:
		return t.StartSettle
	case duration == 0:
		return t.FastWait
	default:
		return time.Duration(duration*t.TimedMultiplier*float64(time.Second)) + t.SettleBuffer
	}
}

// Player replays stored sequences. Waiting for motion is approximated by
// fixed sleeps; there is no motion-complete feedback from the device.
type Player struct {
	arm     Arm
	store   *Store
	timings Timings
	out     io.Writer
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewPlayer creates a player with the default timings.
func NewPlayer(arm Arm, store *Store, out io.Writer) *Player {
	return &Player{
		arm:     arm,
		store:   store,
		timings: DefaultTimings(),
		out:     out,
		sleep:   sleepCtx,
	}
}

// SetTimings overrides the default pacing.
func (p *Player) SetTimings(t Timings) {
	p.timings = t
}

// Play loads the named sequence and replays it step by step. A canceled
// context stops playback immediately, leaving the arm wherever it was;
// prior moves are not rolled back.
func (p *Player) Play(ctx context.Context, name string) error {
	seq, err := p.store.Load(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Playing %q (%d steps)\n", seq.Name, len(seq.Steps))
	for i, step := range seq.Steps {
		fmt.Fprintf(p.out, "  %d. %s (%s)\n", step.Ordinal, FormatSnapshot(step.Positions), describeStep(i == 0, step.Duration))
	}

	if err := p.arm.EnableTorque(ctx); err != nil {
		return err
	}

	// Best-effort safety relaxation; a joint that refuses the limit write
	// does not abort playback.
	for _, joint := range robot.AllJoints() {
		if err := p.arm.RelaxLimits(ctx, joint); err != nil {
			fmt.Fprintf(p.out, "  %s: limits not relaxed: %v\n", joint, err)
		}
	}

	for i, step := range seq.Steps {
		first := i == 0
		fmt.Fprintf(p.out, "Step %d: %s (%s)\n", step.Ordinal, FormatSnapshot(step.Positions), describeStep(first, step.Duration))

		if err := p.arm.Move(ctx, step.Positions, p.timings.moveTime(first, step.Duration)); err != nil {
			return fmt.Errorf("step %d: %w", step.Ordinal, err)
		}
		if err := p.sleep(ctx, p.timings.wait(first, step.Duration)); err != nil {
			return err
		}
	}

	fmt.Fprintln(p.out, "Sequence complete")
	return nil
}

func describeStep(first bool, duration float64) string {
	switch {
	case first:
		return "START"
	case duration == 0:
		return "FAST"
	default:
		return fmt.Sprintf("%gs", duration)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
