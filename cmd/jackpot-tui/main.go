package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/tui"
)

func main() {
	settings := config.LoadSettings(".env")

	// Optional tax table file as the only argument
	tablesPath := settings.TaxTablesPath
	if len(os.Args) > 1 {
		tablesPath = os.Args[1]
		if _, err := os.Stat(tablesPath); os.IsNotExist(err) {
			fmt.Printf("Error: Tax table file not found: %s\n", tablesPath)
			os.Exit(1)
		}
	}

	cfg, err := config.LoadRegulatoryConfigOrDefault(tablesPath)
	if err != nil {
		fmt.Printf("Error loading tax tables: %v\n", err)
		os.Exit(1)
	}
	engine, err := calculation.NewEngineForProduct(cfg, settings.Product)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(engine, settings),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
