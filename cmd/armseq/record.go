package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/jacksonMuller/codelessarm/pkg/sequence"
)

type RecordCommand struct {
	Port string `long:"port" description:"Serial port (overrides config)"`
	Args struct {
		Name string `positional-arg-name:"name" required:"yes" description:"Sequence name"`
	} `positional-args:"yes"`
}

func (c *RecordCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Record sequence: " + c.Args.Name))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println()
	fmt.Println("1. Move the arm to the starting position and confirm")
	fmt.Println("2. Move to the next position")
	fmt.Println("3. Enter the seconds to reach it (0 = fast, decimals OK)")
	fmt.Println("4. Repeat; press Ctrl+C when done")
	fmt.Println()

	arm, cfg, err := openArm(c.Port)
	if err != nil {
		return err
	}
	defer arm.Close()

	store := sequence.NewStore(cfg.Dir())
	rec := sequence.NewRecorder(arm, store, huhPrompter{}, os.Stdout)

	if err := rec.Record(context.Background(), c.Args.Name); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Recording saved."))
	fmt.Println("Play it back with: " + headerStyle.Render("armseq play "+c.Args.Name))
	return nil
}

// huhPrompter drives the recording prompts with huh forms. Aborting a
// form (Ctrl+C) is the operator's stop signal.
type huhPrompter struct{}

func (huhPrompter) ConfirmStart() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Move the arm to the STARTING position").
				Affirmative("Record start").
				Negative("").
				Value(new(bool)),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return sequence.ErrStopped
		}
		return err
	}
	return nil
}

func (huhPrompter) DurationInput(step int) (string, error) {
	var text string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Seconds to reach position %d", step)).
				Description("0 = fast, Ctrl+C = finish recording").
				Value(&text),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", sequence.ErrStopped
		}
		return "", err
	}
	return text, nil
}
