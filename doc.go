// Package codelessarm records and replays timed pose sequences for a
// 6-servo SO-101 robot arm over a serial bus.
//
// Pose the arm by hand while recording, then play the captured sequence
// back with per-step timing.
//
// # Installation
//
//	go install github.com/jacksonMuller/codelessarm/cmd/armseq@latest
//
// # Usage
//
// First, detect the arm's serial port:
//
//	armseq scan
//
// Then record and replay a sequence:
//
//	armseq record wave
//	armseq play wave
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/armseq: CLI with scan, record, play, list and jog commands
//   - pkg/robot: Serial bus adapter, joint table, and configuration
//   - pkg/sequence: Sequence model, storage, recorder, and player
//   - pkg/teleop: Keyboard jog controller
package codelessarm
