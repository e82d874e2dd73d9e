// Package sequence records, stores, and replays timed pose sequences.
package sequence

import (
	"fmt"
	"strings"

	"github.com/jacksonMuller/codelessarm/pkg/robot"
)

// Snapshot maps each joint to a raw position in device units (0-4095).
// Joints are read back to back on the wire, so a snapshot is not
// synchronized across joints.
type Snapshot = map[robot.JointName]int

// TimestampLayout is the human-readable format of Sequence.RecordedAt.
const TimestampLayout = "2006-01-02 15:04:05"

// ClosingStepDuration is the time budget of the synthetic return-to-start
// step appended after recording.
const ClosingStepDuration = 1.0

// Step is one recorded pose with the time budget, in seconds, to reach
// it. A duration of 0 means a fast move with the device default timing.
type Step struct {
	Ordinal   int      `json:"position"`
	Positions Snapshot `json:"positions"`
	Duration  float64  `json:"duration"`
}

// Sequence is an ordered, named list of recorded poses. When more than
// one step was recorded, the final step is a copy of step 1's positions
// with a 1.0s duration, closing the loop back to start.
type Sequence struct {
	Name       string `json:"name"`
	RecordedAt string `json:"recorded_at"`
	TotalSteps int    `json:"total_positions"`
	Steps      []Step `json:"sequence"`
}

// FormatSnapshot renders a snapshot as "joint:pos | ..." in display order.
func FormatSnapshot(s Snapshot) string {
	parts := make([]string, 0, len(s))
	for _, name := range robot.AllJoints() {
		if pos, ok := s[name]; ok {
			parts = append(parts, fmt.Sprintf("%s:%4d", name, pos))
		}
	}
	return strings.Join(parts, " | ")
}
