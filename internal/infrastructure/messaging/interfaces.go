// Package messaging defines interfaces for real-time communication.
package messaging

// SavePublisher is the narrow contract content services use to notify open
// editor sessions about saves.
type SavePublisher interface {
	BroadcastSaved(kind, id, slug string)
}
