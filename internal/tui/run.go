package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/the-rolodex-must-flow/internal/review"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the review screen and blocks until the user quits, returning
// the session so the caller can export the surviving contacts.
func Run(ctx context.Context, cfg Config) (*review.Session, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if cfg.Normalizer == nil {
		return nil, fmt.Errorf("normalizer is required")
	}

	program := tea.NewProgram(New(cfg), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("review UI error: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected final model type %T", final)
	}
	return m.Session(), nil
}
