package models

import "time"

type Photo struct {
	ID           int64
	Title        string
	Description  *string
	Location     *string
	DateTaken    *time.Time
	ImageURL     string
	ThumbnailURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
