package models

import "time"

// WeatherEvent is a single entry of the append-only activity log.
type WeatherEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SEARCH | FETCH_OK | FETCH_ERROR | LANGUAGE_CHANGE | DIGEST_SENT | DIGEST_FAILED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
