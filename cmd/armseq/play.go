package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jacksonMuller/codelessarm/pkg/sequence"
)

type PlayCommand struct {
	Port       string  `long:"port" description:"Serial port (overrides config)"`
	Multiplier float64 `long:"multiplier" default:"4" description:"Wait multiplier for timed moves (hardware calibration)"`
	Args       struct {
		Name string `positional-arg-name:"name" required:"yes" description:"Sequence name"`
	} `positional-args:"yes"`
}

// playTimings builds the playback pacing from the multiplier flag. Zero is
// a valid extreme tuning (timed waits collapse to the settle buffer); only
// negative values are rejected.
func playTimings(multiplier float64) (sequence.Timings, error) {
	timings := sequence.DefaultTimings()
	if multiplier < 0 {
		return timings, fmt.Errorf("multiplier must be >= 0, got %g", multiplier)
	}
	timings.TimedMultiplier = multiplier
	return timings, nil
}

// playOutcome maps the player result to a user-facing message and the
// command's error. Returning the error (instead of exiting here) lets the
// deferred port close run and still ends the process with a non-zero status.
func playOutcome(name string, err error) (string, error) {
	switch {
	case errors.Is(err, context.Canceled):
		return "Playback stopped.", nil
	case errors.Is(err, sequence.ErrNotFound):
		return fmt.Sprintf("No sequence named %q. Record one with 'armseq record %s'.", name, name), err
	case err != nil:
		return "", err
	}
	return successStyle.Render("Playback complete."), nil
}

func (c *PlayCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Play sequence: " + c.Args.Name))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println()

	timings, err := playTimings(c.Multiplier)
	if err != nil {
		return err
	}

	arm, cfg, err := openArm(c.Port)
	if err != nil {
		return err
	}
	defer arm.Close()

	store := sequence.NewStore(cfg.Dir())
	player := sequence.NewPlayer(arm, store, os.Stdout)
	player.SetTimings(timings)

	// Ctrl+C stops playback immediately; the arm stays where it is and
	// the deferred close still runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	msg, err := playOutcome(c.Args.Name, player.Play(ctx, c.Args.Name))
	if msg != "" {
		fmt.Println()
		fmt.Println(msg)
	}
	return err
}
