// Package teleop provides keyboard jog control for the arm.
package teleop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jacksonMuller/codelessarm/pkg/robot"
)

// State represents the current state of a jog session.
type State struct {
	Positions map[robot.JointName]int
	Timestamp time.Time
	Error     error
}

type nudge struct {
	joint robot.JointName
	delta int
}

// Arm is the subset of the bus adapter the jogger drives.
type Arm interface {
	Positions(ctx context.Context) (map[robot.JointName]int, error)
	Nudge(ctx context.Context, joint robot.JointName, delta int) (int, error)
	EnableTorque(ctx context.Context) error
	DisableTorque(ctx context.Context) error
}

// Jogger runs the jog control loop: it applies queued nudge requests as
// read-modify-write goal positions and publishes position readings for
// the UI.
type Jogger struct {
	arm Arm
	hz  int

	mu      sync.Mutex
	running bool
	stateCh chan State
	nudgeCh chan nudge
	logCh   chan string
}

// NewJogger creates a jogger reading positions at hz.
func NewJogger(arm Arm, hz int) *Jogger {
	if hz <= 0 {
		hz = 20
	}
	return &Jogger{
		arm:     arm,
		hz:      hz,
		stateCh: make(chan State, 1),
		nudgeCh: make(chan nudge, 16),
		logCh:   make(chan string, 10),
	}
}

// States returns a channel that receives position updates.
func (j *Jogger) States() <-chan State {
	return j.stateCh
}

// Logs returns a channel that receives log messages.
func (j *Jogger) Logs() <-chan string {
	return j.logCh
}

// Hz returns the control frequency.
func (j *Jogger) Hz() int {
	return j.hz
}

// Nudge queues an offset move for a joint. Non-blocking; requests are
// dropped when the queue is full.
func (j *Jogger) Nudge(joint robot.JointName, delta int) {
	select {
	case j.nudgeCh <- nudge{joint: joint, delta: delta}:
	default:
	}
}

func (j *Jogger) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case j.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start begins the jog control loop. It enables torque so the servos hold
// their positions, and disables it again on shutdown.
func (j *Jogger) Start(ctx context.Context) error {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return fmt.Errorf("already running")
	}
	j.running = true
	j.mu.Unlock()

	if err := j.arm.EnableTorque(ctx); err != nil {
		j.log("Warning: failed to enable torque: %v", err)
	} else {
		j.log("Torque enabled, arm under control")
	}

	j.log("Jog started at %d Hz", j.hz)

	ticker := time.NewTicker(time.Second / time.Duration(j.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.shutdown()
			return ctx.Err()
		case <-ticker.C:
			j.step(ctx)
		}
	}
}

func (j *Jogger) step(ctx context.Context) {
	// Apply all pending nudges before sampling.
drain:
	for {
		select {
		case n := <-j.nudgeCh:
			goal, err := j.arm.Nudge(ctx, n.joint, n.delta)
			if err != nil {
				j.log("Nudge error: %v", err)
				continue
			}
			j.log("%s -> %d", n.joint, goal)
		default:
			break drain
		}
	}

	positions, err := j.arm.Positions(ctx)
	if err != nil {
		j.log("Read error: %v", err)
		j.sendState(State{Error: err, Timestamp: time.Now()})
		return
	}

	j.sendState(State{
		Positions: positions,
		Timestamp: time.Now(),
	})
}

func (j *Jogger) sendState(s State) {
	select {
	case j.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-j.stateCh:
		default:
		}
		j.stateCh <- s
	}
}

func (j *Jogger) shutdown() {
	j.mu.Lock()
	j.running = false
	j.mu.Unlock()

	ctx := context.Background()
	if err := j.arm.DisableTorque(ctx); err != nil {
		j.log("Warning: failed to disable torque: %v", err)
	} else {
		j.log("Torque disabled")
	}
	j.log("Jog stopped")
}
