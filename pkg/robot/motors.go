// Package robot provides the serial bus adapter for the SO-101 arm.
package robot

// JointName identifies one controllable axis of the arm.
type JointName string

// Joint names for the SO-101 arm.
const (
	ShoulderPan  JointName = "shoulder_pan"
	ShoulderLift JointName = "shoulder_lift"
	ElbowFlex    JointName = "elbow_flex"
	WristFlex    JointName = "wrist_flex"
	WristRoll    JointName = "wrist_roll"
	Gripper      JointName = "gripper"
)

// Raw position bounds of the STS3215 servos, in device units.
const (
	RawPositionMin = 0
	RawPositionMax = 4095
)

// AllJoints returns all joint names in display order (matching servo IDs 1-6).
func AllJoints() []JointName {
	return []JointName{
		ShoulderPan,
		ShoulderLift,
		ElbowFlex,
		WristFlex,
		WristRoll,
		Gripper,
	}
}

// ServoID returns the servo ID for a joint, or 0 if the joint is unknown.
func ServoID(name JointName) int {
	for i, joint := range AllJoints() {
		if joint == name {
			return i + 1
		}
	}
	return 0
}

// JointByID returns the joint name for a servo ID.
func JointByID(id int) (JointName, bool) {
	joints := AllJoints()
	if id < 1 || id > len(joints) {
		return "", false
	}
	return joints[id-1], true
}

func clampPosition(pos int) int {
	if pos < RawPositionMin {
		return RawPositionMin
	}
	if pos > RawPositionMax {
		return RawPositionMax
	}
	return pos
}
