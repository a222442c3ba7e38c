package alertws

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
)

// Hub fans goal alerts out to a user's connected clients. Alerts are
// fire-and-forget: a user with no open socket simply misses the push and
// sees the state on the next fetch.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	alerts     chan *Alert
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

type Alert struct {
	Type          string `json:"type"`
	UserID        string `json:"-"`
	Date          string `json:"date"`
	TotalCalories int    `json:"totalCalories"`
	CalorieGoal   int    `json:"calorieGoal"`
	Timestamp     string `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		alerts:     make(chan *Alert, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case alert := <-h.alerts:
			h.deliver(alert)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// PublishGoalExceeded queues an alert for the user's open sockets. Never
// blocks the caller; when the queue is full the alert is dropped.
func (h *Hub) PublishGoalExceeded(userID int64, date string, totalCalories, calorieGoal int) {
	alert := &Alert{
		Type:          "calorie_goal_exceeded",
		UserID:        strconv.FormatInt(userID, 10),
		Date:          date,
		TotalCalories: totalCalories,
		CalorieGoal:   calorieGoal,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	select {
	case h.alerts <- alert:
	default:
		log.Printf("alert hub queue full, dropping alert for user %s", alert.UserID)
	}
}

func (h *Hub) deliver(alert *Alert) {
	payload, err := json.Marshal(alert)
	if err != nil {
		log.Printf("alert hub encode alert: %v", err)
		return
	}

	set, ok := h.clients[alert.UserID]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, alert.UserID)
	}
}

// ReadPump drains the socket until the client disconnects. Inbound frames
// carry no meaning for alerts; reading is only needed to notice the close.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
