package models

import "time"

// Route is an origin/destination city pair served by the company.
type Route struct {
	ID                string    `json:"id"`
	FromCity          string    `json:"fromCity"`
	ToCity            string    `json:"toCity"`
	FromCountry       string    `json:"fromCountry"`
	ToCountry         string    `json:"toCountry"`
	Distance          *int      `json:"distance"`
	EstimatedDuration *int      `json:"estimatedDuration"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
}
