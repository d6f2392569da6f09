package core

import (
	"time"
)

// RenderModel is everything the page renderer needs.
type RenderModel struct {
	CountA int64
	CountB int64

	LabelA string
	LabelB string

	Title string
}

type ResetEvent struct {
	ID     string    `json:"id"`
	Option string    `json:"option"`
	At     time.Time `json:"at"`

	// Previous is the counter value right before the reset, Value is the one read back after it.
	Previous int64 `json:"previous"`
	Value    int64 `json:"value"`
}
