package domain

import "time"

// Change event commands that are not editor commands.
const (
	EventDocumentDeleted = "documentDeleted"
)

// ChangeEvent is broadcast to subscribers of a document after every applied
// command. Unsaved marks a change the store has not accepted yet.
type ChangeEvent struct {
	DocumentID string    `json:"documentId"`
	Command    string    `json:"command"`
	Version    uint64    `json:"version"`
	CanUndo    bool      `json:"canUndo"`
	CanRedo    bool      `json:"canRedo"`
	Unsaved    bool      `json:"unsaved,omitempty"`
	Origin     string    `json:"origin,omitempty"`
	At         time.Time `json:"at"`
}
