package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"

	"github.com/jacksonMuller/codelessarm/pkg/robot"
)

type ScanCommand struct{}

func (c *ScanCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Arm Scanner"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━"))
	fmt.Println()
	fmt.Println("Scanning for a robot arm...")
	fmt.Println()

	candidates := findArmPorts()
	if len(candidates) == 0 {
		fmt.Println("No SO-101 arm found.")
		fmt.Println("Make sure the arm is connected and powered on.")
		os.Exit(1)
	}

	port := candidates[0]
	if len(candidates) > 1 {
		port = chooseArmPort(candidates)
	}

	cfg := loadOrEmptyConfig()
	cfg.Port = port
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Arm configured:"))
	fmt.Printf("  Port: %s\n", port)
	fmt.Printf("Configuration saved to %s\n", robot.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Record a sequence with: " + headerStyle.Render("armseq record <name>"))
	return nil
}

// findArmPorts returns every serial port with an SO-101 arm attached
// (6 servos with IDs 1-6).
func findArmPorts() []string {
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Printf("Error listing ports: %v\n", err)
		return nil
	}

	var found []string

	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)

		bus, err := feetech.NewBus(feetech.BusConfig{
			Port:     port,
			BaudRate: 1_000_000,
			Protocol: feetech.ProtocolSTS,
			Timeout:  100 * time.Millisecond,
		})
		if err != nil {
			cancel()
			continue
		}

		servos, err := bus.Scan(ctx, 1, 6)
		cancel()
		bus.Close()

		if err != nil {
			continue
		}

		if isSOArm(servos) {
			fmt.Printf("  Found SO-101 arm on %s\n", port)
			found = append(found, port)
		}
	}

	return found
}

func isSOArm(servos []feetech.FoundServo) bool {
	if len(servos) != 6 {
		return false
	}

	ids := make(map[int]bool)
	for _, s := range servos {
		ids[s.ID] = true
	}

	for i := 1; i <= 6; i++ {
		if !ids[i] {
			return false
		}
	}

	return true
}

func chooseArmPort(candidates []string) string {
	options := make([]huh.Option[string], 0, len(candidates))
	for _, port := range candidates {
		options = append(options, huh.NewOption(port, port))
	}

	var port string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Multiple arms found, which port should armseq use?").
				Options(options...).
				Value(&port),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return port
}
