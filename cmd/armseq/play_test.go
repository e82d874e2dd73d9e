package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jacksonMuller/codelessarm/pkg/sequence"
)

func TestPlayOutcome(t *testing.T) {
	notFound := fmt.Errorf("sequence %q: %w", "wave", sequence.ErrNotFound)
	busErr := errors.New("write timeout")

	tests := []struct {
		name    string
		err     error
		wantMsg bool
		wantErr error
	}{
		{"success", nil, true, nil},
		{"canceled is a normal stop", context.Canceled, true, nil},
		{"missing sequence", notFound, true, notFound},
		{"bus error passes through", busErr, false, busErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := playOutcome("wave", tt.err)
			if (msg != "") != tt.wantMsg {
				t.Errorf("msg = %q, want message: %v", msg, tt.wantMsg)
			}
			if !errors.Is(err, tt.wantErr) && !(err == nil && tt.wantErr == nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// A missing sequence must surface as a returned error, not a process
// exit, so the deferred port close runs and main still exits non-zero.
func TestPlayOutcome_NotFoundReturnsError(t *testing.T) {
	_, err := playOutcome("wave", fmt.Errorf("sequence %q: %w", "wave", sequence.ErrNotFound))
	if err == nil {
		t.Fatal("playOutcome returned nil for a missing sequence")
	}
}

func TestPlayTimings(t *testing.T) {
	tests := []struct {
		multiplier float64
		want       float64
		wantErr    bool
	}{
		{4, 4, false},
		{1.5, 1.5, false},
		{0, 0, false}, // zero is a valid extreme tuning, not the default
		{-1, 0, true},
	}

	for _, tt := range tests {
		timings, err := playTimings(tt.multiplier)
		if (err != nil) != tt.wantErr {
			t.Errorf("playTimings(%g) error = %v, wantErr %v", tt.multiplier, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && timings.TimedMultiplier != tt.want {
			t.Errorf("playTimings(%g).TimedMultiplier = %g, want %g", tt.multiplier, timings.TimedMultiplier, tt.want)
		}
	}
}
