package main

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"tourbook/internal/config"
	"tourbook/internal/gateway"
	"tourbook/internal/session"
	"tourbook/internal/tui"
)

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gw := gateway.New(cfg.Gateway.BaseURL, cfg.Gateway.Timeout)
	store := session.NewStore(cfg.Session.Path)

	p := tea.NewProgram(tui.New(ctx, cfg, gw, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
