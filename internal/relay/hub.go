package relay

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type message struct {
	topic   string
	payload []byte
	// skipped on delivery; lets a join announce itself without echoing
	// back to the joiner
	except *Client
}

// Hub fans relayed messages out to topic subscribers. Topics are either a
// room id (everyone in the room) or roomId:role (one side only).
type Hub struct {
	clients    map[*Client]bool
	topics     map[string]map[*Client]bool
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		topics:     make(map[string]map[*Client]bool),
		broadcast:  make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		for topic := range client.topics {
			h.dropFromTopicLocked(client, topic)
		}
		close(client.send)
	}
}

// Subscribe adds the client to a topic. Synchronous on purpose: a join must
// be subscribed before the user-joined broadcast that follows it is queued.
func (h *Hub) Subscribe(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true
	client.topics[topic] = true
}

// Publish queues a message for every subscriber of the topic. Fire and
// forget: a full hub queue drops the message rather than block the caller.
func (h *Hub) Publish(topic string, out Outbound) {
	h.PublishExcept(topic, out, nil)
}

// PublishExcept is Publish with one subscriber left out, so a sender can
// announce to the room without hearing itself.
func (h *Hub) PublishExcept(topic string, out Outbound, except *Client) {
	out.Timestamp = time.Now()

	payload, err := json.Marshal(out)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- message{topic: topic, payload: payload, except: except}:
	default:
	}
}

func (h *Hub) deliver(msg message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.topics[msg.topic] {
		if client == msg.except {
			continue
		}
		select {
		case client.send <- msg.payload:
		default:
			// slow client: drop it instead of stalling the room
			delete(h.clients, client)
			for topic := range client.topics {
				h.dropFromTopicLocked(client, topic)
			}
			close(client.send)
		}
	}
}

func (h *Hub) dropFromTopicLocked(client *Client, topic string) {
	delete(h.topics[topic], client)
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
}

// Subscribers returns the current subscriber count of a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.topics[topic])
}
