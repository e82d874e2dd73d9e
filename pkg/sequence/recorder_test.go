package sequence

import (
	"context"
	"errors"
	"io"
	"maps"
	"reflect"
	"testing"
	"time"

	"github.com/jacksonMuller/codelessarm/pkg/robot"
)

type fakeMove struct {
	positions Snapshot
	moveTime  time.Duration
}

// fakeArm scripts position reads and records every bus interaction.
type fakeArm struct {
	snapshots []Snapshot // successive Positions results; the last one repeats
	reads     int
	readErr   error

	moves   []fakeMove
	moveErr error

	torqueCalls []string // "on" / "off" in call order

	relaxed  []robot.JointName
	relaxErr map[robot.JointName]error
}

func (f *fakeArm) Positions(ctx context.Context) (map[robot.JointName]int, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if len(f.snapshots) == 0 {
		return Snapshot{}, nil
	}
	i := f.reads
	if i >= len(f.snapshots) {
		i = len(f.snapshots) - 1
	}
	f.reads++
	return maps.Clone(f.snapshots[i]), nil
}

func (f *fakeArm) Move(ctx context.Context, positions map[robot.JointName]int, moveTime time.Duration) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moves = append(f.moves, fakeMove{positions: maps.Clone(positions), moveTime: moveTime})
	return nil
}

func (f *fakeArm) EnableTorque(ctx context.Context) error {
	f.torqueCalls = append(f.torqueCalls, "on")
	return nil
}

func (f *fakeArm) DisableTorque(ctx context.Context) error {
	f.torqueCalls = append(f.torqueCalls, "off")
	return nil
}

func (f *fakeArm) RelaxLimits(ctx context.Context, joint robot.JointName) error {
	f.relaxed = append(f.relaxed, joint)
	return f.relaxErr[joint]
}

// scriptPrompter feeds canned duration inputs, then signals the operator's
// stop (or a scripted error) once they run out.
type scriptPrompter struct {
	startErr error
	inputs   []string
	finalErr error // returned after inputs are exhausted; nil means ErrStopped
}

func (p *scriptPrompter) ConfirmStart() error {
	return p.startErr
}

func (p *scriptPrompter) DurationInput(step int) (string, error) {
	if len(p.inputs) == 0 {
		if p.finalErr != nil {
			return "", p.finalErr
		}
		return "", ErrStopped
	}
	in := p.inputs[0]
	p.inputs = p.inputs[1:]
	return in, nil
}

func recordOne(t *testing.T, arm *fakeArm, prompt Prompter) (*Store, error) {
	t.Helper()
	store := NewStore(t.TempDir())
	rec := NewRecorder(arm, store, prompt, io.Discard)
	err := rec.Record(context.Background(), "test")
	return store, err
}

func TestRecorder_AppendsReturnToStart(t *testing.T) {
	start := testPose(1000)
	arm := &fakeArm{snapshots: []Snapshot{start, testPose(2000), testPose(3000)}}

	// start -> (2.0s) -> B -> (0s) -> C -> stop
	store, err := recordOne(t, arm, &scriptPrompter{inputs: []string{"2.0", "0"}})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	seq, err := store.Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(seq.Steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(seq.Steps))
	}

	durations := []float64{0, 2.0, 0, 1.0}
	for i, step := range seq.Steps {
		if step.Ordinal != i+1 {
			t.Errorf("step %d ordinal = %d, want %d", i, step.Ordinal, i+1)
		}
		if step.Duration != durations[i] {
			t.Errorf("step %d duration = %v, want %v", i, step.Duration, durations[i])
		}
	}

	last := seq.Steps[len(seq.Steps)-1]
	if !reflect.DeepEqual(last.Positions, start) {
		t.Errorf("closing step positions = %v, want start pose %v", last.Positions, start)
	}
}

func TestRecorder_SingleStepHasNoClosingStep(t *testing.T) {
	arm := &fakeArm{snapshots: []Snapshot{testPose(1000)}}

	store, err := recordOne(t, arm, &scriptPrompter{})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	seq, err := store.Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(seq.Steps) != 1 {
		t.Errorf("got %d steps, want 1", len(seq.Steps))
	}
}

func TestRecorder_RejectsInvalidDurations(t *testing.T) {
	arm := &fakeArm{snapshots: []Snapshot{testPose(1000), testPose(2000)}}

	store, err := recordOne(t, arm, &scriptPrompter{inputs: []string{"abc", "-1", "", "1.5"}})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// Rejected inputs must not sample the arm or advance the step counter.
	if arm.reads != 2 {
		t.Errorf("arm sampled %d times, want 2 (start + one valid step)", arm.reads)
	}

	seq, err := store.Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(seq.Steps) != 3 {
		t.Fatalf("got %d steps, want 3 (start, 1.5s step, closing)", len(seq.Steps))
	}
	if seq.Steps[1].Duration != 1.5 {
		t.Errorf("step 2 duration = %v, want 1.5", seq.Steps[1].Duration)
	}
}

func TestRecorder_TorqueRestoredAfterStop(t *testing.T) {
	arm := &fakeArm{snapshots: []Snapshot{testPose(1000)}}

	if _, err := recordOne(t, arm, &scriptPrompter{}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if !reflect.DeepEqual(arm.torqueCalls, []string{"off", "on"}) {
		t.Errorf("torque calls = %v, want [off on]", arm.torqueCalls)
	}
}

func TestRecorder_TorqueRestoredOnPrompterError(t *testing.T) {
	arm := &fakeArm{snapshots: []Snapshot{testPose(1000)}}
	boom := errors.New("terminal went away")

	store, err := recordOne(t, arm, &scriptPrompter{finalErr: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Record error = %v, want %v", err, boom)
	}

	if !reflect.DeepEqual(arm.torqueCalls, []string{"off", "on"}) {
		t.Errorf("torque calls = %v, want [off on]", arm.torqueCalls)
	}

	// A failed session must not persist anything.
	if _, err := store.Load("test"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after failed record = %v, want ErrNotFound", err)
	}
}

func TestRecorder_StopBeforeStartSavesEmptySequence(t *testing.T) {
	arm := &fakeArm{snapshots: []Snapshot{testPose(1000)}}

	store, err := recordOne(t, arm, &scriptPrompter{startErr: ErrStopped})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	seq, err := store.Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(seq.Steps) != 0 {
		t.Errorf("got %d steps, want 0", len(seq.Steps))
	}
	if seq.TotalSteps != 0 {
		t.Errorf("TotalSteps = %d, want 0", seq.TotalSteps)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"2", 2, false},
		{"1.5", 1.5, false},
		{" 3.25 ", 3.25, false},
		{"-1", 0, true},
		{"-0.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
