package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Scan   ScanCommand   `command:"scan" description:"Detect the arm's serial port and save configuration"`
	Record RecordCommand `command:"record" description:"Record a position sequence by posing the arm"`
	Play   PlayCommand   `command:"play" description:"Play back a recorded sequence"`
	List   ListCommand   `command:"list" description:"List recorded sequences"`
	Jog    JogCommand    `command:"jog" description:"Jog joints with the keyboard"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "armseq - position sequence recorder and player for the SO-101 arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
