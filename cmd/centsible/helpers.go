package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/mwhite/centsible/internal/config"
	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
	"github.com/mwhite/centsible/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/centsible/centsible.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// monthWindow returns the start and end of the month containing now.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// categoryColors maps the category palette names to terminal colors.
var categoryColors = map[string]lipgloss.Color{
	"orange": lipgloss.Color("#F4A261"),
	"blue":   lipgloss.Color("#4A90D9"),
	"green":  lipgloss.Color("#6AB04C"),
	"purple": lipgloss.Color("#9B59B6"),
	"yellow": lipgloss.Color("#F1C40F"),
	"teal":   lipgloss.Color("#4ECDC4"),
	"red":    lipgloss.Color("#FF6B6B"),
	"pink":   lipgloss.Color("#FF8FAB"),
	"gray":   lipgloss.Color("#95A5A6"),
}

// renderCategory renders a category label in its palette color, left-padded
// to the given width.
func renderCategory(category model.Category, width int) string {
	label := fmt.Sprintf("%-*s", width, string(category))
	if color, ok := categoryColors[category.Meta().Color]; ok {
		return lipgloss.NewStyle().Foreground(color).Render(label)
	}
	return label
}
