package models

import "time"

// FoodLog records one consumption event. Date is stamped when the log is
// created and never supplied by the caller.
type FoodLog struct {
	ID       int64     `json:"id"`
	ItemName string    `json:"itemName"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Category string    `json:"category"`
	Notes    string    `json:"notes,omitempty"`
	Date     time.Time `json:"date"`
}

func (l FoodLog) RecordID() int64 { return l.ID }

func (l FoodLog) WithID(id int64) FoodLog {
	l.ID = id
	return l
}

func (l FoodLog) Stamp(now time.Time) FoodLog {
	l.Date = now.UTC()
	return l
}

// FoodLogPatch carries the fields to change; nil fields are left alone.
type FoodLogPatch struct {
	ItemName *string  `json:"itemName,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Category *string  `json:"category,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}
