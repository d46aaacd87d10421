package model

import "time"

// Goal is a savings target the user contributes toward over time.
type Goal struct {
	TargetDate    time.Time
	CreatedAt     time.Time
	Name          string
	Icon          string
	Notes         string
	ID            int64
	TargetAmount  float64
	CurrentAmount float64
}

// Progress returns the completion fraction in [0, 1].
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	return p
}

// Reached reports whether the goal has been fully funded.
func (g Goal) Reached() bool {
	return g.TargetAmount > 0 && g.CurrentAmount >= g.TargetAmount
}
