package models

import (
	"math"
	"time"
)

// ExpirationLayout is the calendar-date format used for ExpirationDate.
const ExpirationLayout = "2006-01-02"

type InventoryItem struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Category       string  `json:"category"`
	ExpirationDate string  `json:"expirationDate,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

func (i InventoryItem) RecordID() int64 { return i.ID }

func (i InventoryItem) WithID(id int64) InventoryItem {
	i.ID = id
	return i
}

// DaysUntilExpiration returns whole days from now's calendar date to the
// expiration date, negative once expired. ok is false when the item has no
// expiration date or it cannot be parsed.
func (i InventoryItem) DaysUntilExpiration(now time.Time) (days int, ok bool) {
	if i.ExpirationDate == "" {
		return 0, false
	}
	exp, err := time.ParseInLocation(ExpirationLayout, i.ExpirationDate, now.Location())
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(exp.Sub(today).Hours() / 24)), true
}

type InventoryPatch struct {
	Name           *string  `json:"name,omitempty"`
	Quantity       *float64 `json:"quantity,omitempty"`
	Category       *string  `json:"category,omitempty"`
	ExpirationDate *string  `json:"expirationDate,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}
