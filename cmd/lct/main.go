// Package main is the entry point for the LLM Cost Dashboard TUI.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-calder/llmcost-dashboard-tui/internal/app"
	"github.com/m-calder/llmcost-dashboard-tui/internal/config"
	"github.com/m-calder/llmcost-dashboard-tui/internal/services"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/tabs/breakdown"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/tabs/info"
	"github.com/m-calder/llmcost-dashboard-tui/internal/ui/tabs/trend"
	"github.com/m-calder/llmcost-dashboard-tui/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	// Run the application
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize the service manager
	// This opens the usage database and starts the refresh/watch loops
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 3. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 4. Initialize tabs with shared state
	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	tabs := []app.Tab{
		breakdown.New(state),                      // Tab 0: Breakdown - per-category costs
		trend.New(state, cfg.DailyBudgetMicroUSD), // Tab 1: Trend - daily spend
		info.New(state, cfg),                      // Tab 2: Info - configuration and app info
	}
	model.SetTabs(tabs)

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 6. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 7. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		// Send quit message to the program
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`LLM Cost Dashboard TUI - token cost attribution for LLM usage logs

Usage:
  lct [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Breakdown, Trend, Info)
  Tab/Shift+Tab   Navigate between tabs
  w               Cycle reporting window (24h, 7d, 30d, all time)
  t/c/p/n         Sort breakdown by tokens, cost, share, or category
  j/k, Up/Down    Navigate lists
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DATABASE_PATH     SQLite usage database path
  TENANT_SCOPE      Restrict reporting to one scope (default: all)
  REFRESH_INTERVAL  Data refresh interval (default: 30s)
  DAILY_BUDGET_USD  Daily spend budget for alerts (default: disabled)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/llmcost-tui/.env
  - ~/.llmcost/.env

For more information, visit: https://github.com/m-calder/llmcost-dashboard-tui`)
}
