package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jacksonMuller/codelessarm/pkg/robot"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// loadOrEmptyConfig returns the saved config, or an empty one when none
// exists yet.
func loadOrEmptyConfig() *robot.Config {
	cfg, err := robot.LoadConfig()
	if err != nil {
		return &robot.Config{}
	}
	return cfg
}

// openArm resolves the serial port from the flag or the config file and
// connects to the arm. The caller owns the returned Arm and must Close it.
func openArm(portFlag string) (*robot.Arm, *robot.Config, error) {
	cfg := loadOrEmptyConfig()

	port := portFlag
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		return nil, nil, fmt.Errorf("no serial port configured; run 'armseq scan' or pass --port")
	}

	arm, err := robot.Connect(port)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", port, err)
	}
	fmt.Printf("Connected to arm on %s\n", port)
	return arm, cfg, nil
}
