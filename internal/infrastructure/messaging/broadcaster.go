package messaging

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// EditorClient represents a single connected editor session.
type EditorClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

// SaveEvent is pushed to every open editor session when content is saved, so
// that concurrently open page and template editors can reload each other's
// changes.
type SaveEvent struct {
	Kind    string    `json:"kind"` // "page", "template", "blockTemplate" or "menu"
	ID      string    `json:"id"`
	Slug    string    `json:"slug,omitempty"`
	SavedAt time.Time `json:"savedAt"`
}

// EditorBroadcaster manages all connected editor clients and broadcasts
// save events.
type EditorBroadcaster struct {
	clients    map[*EditorClient]bool
	register   chan *EditorClient
	unregister chan *EditorClient
	events     chan SaveEvent
	mu         sync.RWMutex
}

// NewEditorBroadcaster creates a new broadcaster instance.
func NewEditorBroadcaster() *EditorBroadcaster {
	return &EditorBroadcaster{
		clients:    make(map[*EditorClient]bool),
		register:   make(chan *EditorClient),
		unregister: make(chan *EditorClient),
		events:     make(chan SaveEvent, 16),
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *EditorBroadcaster) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			log.Printf("Editor client registered (%d connected)", len(b.clients))
			b.mu.Unlock()

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			log.Printf("Editor client unregistered (%d connected)", len(b.clients))
			b.mu.Unlock()

		case event := <-b.events:
			b.broadcast(event)

		case <-ticker.C:
			b.ping()
		}
	}
}

// Register queues a client for registration.
func (b *EditorBroadcaster) Register(client *EditorClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *EditorBroadcaster) Unregister(client *EditorClient) {
	b.unregister <- client
}

// BroadcastSaved queues a save event for delivery to all connected clients.
func (b *EditorBroadcaster) BroadcastSaved(kind, id, slug string) {
	event := SaveEvent{
		Kind:    kind,
		ID:      id,
		Slug:    slug,
		SavedAt: time.Now().UTC(),
	}

	select {
	case b.events <- event:
	default:
		log.Printf("Editor broadcaster event queue full, dropping %s save for %s", kind, id)
	}
}

// ClientCount reports how many editor sessions are currently connected.
func (b *EditorBroadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *EditorBroadcaster) broadcast(event SaveEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling save event: %v", err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for client := range b.clients {
		select {
		case client.Send <- message:
		default:
		}
	}
}

func (b *EditorBroadcaster) ping() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for client := range b.clients {
		if err := client.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
			log.Printf("Editor client ping failed: %v", err)
		}
	}
}
