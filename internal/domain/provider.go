package domain

import "time"

// Provider is a dog sitter or walker listed in the catalogue.
type Provider struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Email          string    `json:"email" yaml:"email"`
	City           string    `json:"city" yaml:"city"`
	ServiceTypes   []string  `json:"serviceTypes" yaml:"service_types"`
	DailyRateCents int64     `json:"dailyRateCents" yaml:"daily_rate_cents"`
	Rating         float64   `json:"rating" yaml:"rating"`
	CreatedAt      time.Time `json:"createdAt" yaml:"-"`
}
