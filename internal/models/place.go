package models

import "time"

// Place represents a saved or visited location.
type Place struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Rating    float64   `json:"rating"`
	Visits    int       `json:"visits"`
	LastVisit time.Time `json:"last_visit"`
}
