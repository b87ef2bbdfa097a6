package ws

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per room and fans room events out to
// every subscribed participant. It implements service.Broadcaster.
type Hub struct {
	rooms map[string]map[*Connection]bool

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *RoomMessage
	disconnect chan string
}

// Connection represents one participant's WebSocket subscription
type Connection struct {
	RoomID        string
	ParticipantID string
	Send          chan []byte
	Hub           *Hub
}

// RoomMessage is a message addressed to every connection in a room
type RoomMessage struct {
	RoomID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		rooms:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *RoomMessage, 256),
		disconnect: make(chan string),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			if h.rooms[conn.RoomID] == nil {
				h.rooms[conn.RoomID] = make(map[*Connection]bool)
			}
			h.rooms[conn.RoomID][conn] = true
			log.Info().Str("room_id", conn.RoomID).Str("participant_id", conn.ParticipantID).Msg("ws subscribed")

		case conn := <-h.unregister:
			if conns, ok := h.rooms[conn.RoomID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.rooms, conn.RoomID)
					}
					log.Info().Str("room_id", conn.RoomID).Str("participant_id", conn.ParticipantID).Msg("ws unsubscribed")
				}
			}

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal ws message")
				continue
			}
			for conn := range h.rooms[msg.RoomID] {
				select {
				case conn.Send <- data:
				default:
					// Slow consumer; drop the connection rather than block
					// the hub.
					delete(h.rooms[msg.RoomID], conn)
					close(conn.Send)
				}
			}

		case roomID := <-h.disconnect:
			for conn := range h.rooms[roomID] {
				close(conn.Send)
			}
			delete(h.rooms, roomID)
		}
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToRoom sends an event to every connection subscribed to the room
func (h *Hub) BroadcastToRoom(roomID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("type", msgType).Msg("failed to marshal ws payload")
		return
	}
	h.broadcast <- &RoomMessage{
		RoomID:  roomID,
		Message: &Message{Type: MessageType(msgType), Payload: data},
	}
}

// DisconnectRoom closes every connection in a room; used when the room is
// deleted by the cleanup sweep.
func (h *Hub) DisconnectRoom(roomID string) {
	h.disconnect <- roomID
}
