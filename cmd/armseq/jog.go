package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/jacksonMuller/codelessarm/pkg/robot"
	"github.com/jacksonMuller/codelessarm/pkg/teleop"
)

type JogCommand struct {
	Port string `long:"port" description:"Serial port (overrides config)"`
	Hz   int    `long:"hz" default:"20" description:"Position refresh frequency"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Joint colors - distinct colors for each joint
var jointColors = map[robot.JointName]string{
	robot.ShoulderPan:  "196", // red
	robot.ShoulderLift: "208", // orange
	robot.ElbowFlex:    "226", // yellow
	robot.WristFlex:    "46",  // green
	robot.WristRoll:    "51",  // cyan
	robot.Gripper:      "201", // magenta
}

type jogBinding struct {
	joint robot.JointName
	delta int
}

// Key layout follows the original keyboard teleop, with the gripper moved
// off q/e so q stays quit. Step sizes are per joint.
var jogKeys = map[string]jogBinding{
	"a": {robot.ShoulderPan, -30},
	"d": {robot.ShoulderPan, 30},
	"w": {robot.ShoulderLift, 80},
	"s": {robot.ShoulderLift, -80},
	"y": {robot.ElbowFlex, -60},
	"h": {robot.ElbowFlex, 60},
	"i": {robot.WristFlex, -60},
	"k": {robot.WristFlex, 60},
	"j": {robot.WristRoll, 60},
	"l": {robot.WristRoll, -60},
	"e": {robot.Gripper, 15},
	"c": {robot.Gripper, -15},
}

// jointKeyHints maps each joint to its "down/up" key pair for the legend.
var jointKeyHints = map[robot.JointName]string{
	robot.ShoulderPan:  "a/d",
	robot.ShoulderLift: "s/w",
	robot.ElbowFlex:    "y/h",
	robot.WristFlex:    "i/k",
	robot.WristRoll:    "l/j",
	robot.Gripper:      "c/e",
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type jogModel struct {
	jogger        *teleop.Jogger
	chart         *streamlinechart.Model
	width         int      // terminal width
	height        int      // terminal height
	logs          []string // last N log messages
	quitting      bool
	lastPositions map[robot.JointName]int // track previous positions to detect movement
}

func (m *jogModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// hasMovement checks if any joint position has changed from the last state
func (m *jogModel) hasMovement(positions map[robot.JointName]int) bool {
	if m.lastPositions == nil {
		return true // first reading, consider it movement
	}
	for name, pos := range positions {
		if lastPos, ok := m.lastPositions[name]; !ok || pos != lastPos {
			return true
		}
	}
	return false
}

// Messages from the jogger
type stateMsg teleop.State
type logMsg string

func waitForState(j *teleop.Jogger) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-j.States())
	}
}

func waitForLog(j *teleop.Jogger) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-j.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *jogModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *jogModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialJogModel(j *teleop.Jogger) jogModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(robot.RawPositionMin, robot.RawPositionMax+1),
	)

	// Set up data set styles for each joint
	for _, name := range robot.AllJoints() {
		color := jointColors[name]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(string(name), runes.ThinLineStyle, style)
	}

	return jogModel{
		jogger: j,
		chart:  &chart,
	}
}

func (m jogModel) Init() tea.Cmd {
	// Start listening for state and log updates
	return tea.Batch(
		waitForState(m.jogger),
		waitForLog(m.jogger),
	)
}

func (m jogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		if b, ok := jogKeys[key]; ok {
			m.jogger.Nudge(b.joint, b.delta)
		}
		return m, nil

	case stateMsg:
		state := teleop.State(msg)
		if state.Positions != nil {
			// Only update chart if there's movement (freeze when idle)
			if m.hasMovement(state.Positions) {
				for name, pos := range state.Positions {
					m.chart.PushDataSet(string(name), float64(pos))
				}
				m.chart.DrawAll()
				m.lastPositions = state.Positions
			}
		}
		return m, waitForState(m.jogger)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.jogger)
	}

	return m, nil
}

func (m jogModel) View() string {
	if m.quitting {
		return "Jog stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Armseq Jog"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.jogger.Hz()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderJogLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press a joint key to move, 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderJogLegend() string {
	var items []string
	for _, name := range robot.AllJoints() {
		color := jointColors[name]
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		item := colorStyle.Render("━━") + fmt.Sprintf(" %s %s", name, statusStyle.Render(jointKeyHints[name]))
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}

func (c *JogCommand) Execute(args []string) error {
	arm, _, err := openArm(c.Port)
	if err != nil {
		return err
	}
	defer arm.Close()

	jogger := teleop.NewJogger(arm, c.Hz)

	// Start jogger in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- jogger.Start(ctx)
	}()

	// Run TUI
	p := tea.NewProgram(initialJogModel(jogger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	// Stop the control loop and wait for its torque-off shutdown to
	// complete before the deferred close releases the port.
	cancel()
	if err := <-done; err != nil && err != context.Canceled {
		log.Printf("Jogger error: %v", err)
	}

	return nil
}
