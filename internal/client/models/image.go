package models

import "time"

// UploadedImage stores the picture inline as a base64 data URL
// ("data:image/png;base64,...").
type UploadedImage struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	Data       string    `json:"data"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (im UploadedImage) RecordID() int64 { return im.ID }

func (im UploadedImage) WithID(id int64) UploadedImage {
	im.ID = id
	return im
}

func (im UploadedImage) Stamp(now time.Time) UploadedImage {
	im.UploadedAt = now.UTC()
	return im
}
