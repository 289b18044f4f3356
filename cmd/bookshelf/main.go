package main

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"bookshelf/internal/config"
	"bookshelf/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The database is opened from inside the program so a broken store
	// shows up on screen instead of killing the process.
	p := tea.NewProgram(tui.New(ctx, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
