// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. HashedPassword never leaves the server.
type User struct {
	ID                  string
	Username            string
	Email               string
	HashedPassword      string
	FullName            string
	IsActive            bool
	IsSuperuser         bool
	AccountType         string
	HousingSize         int
	BudgetPref          float64
	DietaryPref         string
	DietaryRestrictions string
	Location            string
	CreatedAt           time.Time
}
