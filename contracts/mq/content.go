package mq

import "time"

const RoutingContentUpdated = "content.updated"

// ContentUpdatedPayload is published after content has been written to a store.
type ContentUpdatedPayload struct {
	Kinds     []string  `json:"kinds"` // projects / skills / achievements
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}
