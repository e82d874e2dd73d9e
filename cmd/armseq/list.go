package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jacksonMuller/codelessarm/pkg/sequence"
)

type ListCommand struct{}

func (c *ListCommand) Execute(args []string) error {
	cfg := loadOrEmptyConfig()
	store := sequence.NewStore(cfg.Dir())

	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No sequences recorded yet.")
		fmt.Println("Record one with: " + headerStyle.Render("armseq record <name>"))
		return nil
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		seq, err := store.Load(name)
		if err != nil {
			rows = append(rows, []string{name, "?", fmt.Sprintf("unreadable: %v", err)})
			continue
		}
		rows = append(rows, []string{name, fmt.Sprintf("%d", len(seq.Steps)), seq.RecordedAt})
	}

	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableNameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	tableCellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Sequence", "Steps", "Recorded at").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 {
				return tableNameStyle
			}
			return tableCellStyle
		})

	fmt.Println(t.Render())
	return nil
}
