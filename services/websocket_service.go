package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"trackit-app/trackit/broker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

type WebSocketServiceInterface interface {
	Start()
	Stop()
	HandleConnection(c *gin.Context)
}

// wsClient is one connected websocket consumer.
type wsClient struct {
	id     string
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// WebSocketService forwards entity events from the broker to connected
// clients. Each client only receives events whose actor is their own user.
type WebSocketService struct {
	clients       map[string]*wsClient
	clientsMutex  sync.RWMutex
	upgrader      websocket.Upgrader
	subscriptions []*nats.Subscription
}

func NewWebSocketService() *WebSocketService {
	return &WebSocketService{
		clients: make(map[string]*wsClient),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Start subscribes to every entity subject. Without a broker connection the
// service still accepts clients; they just receive nothing.
func (ws *WebSocketService) Start() {
	for _, subject := range broker.AllSubjects {
		sub, err := broker.Subscribe(subject, ws.handleBrokerMessage)
		if err != nil {
			log.Printf("Warning: could not subscribe to %s: %v", subject, err)
			continue
		}
		ws.subscriptions = append(ws.subscriptions, sub)
	}
}

func (ws *WebSocketService) Stop() {
	for _, sub := range ws.subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe: %v", err)
		}
	}
	ws.subscriptions = nil

	ws.clientsMutex.Lock()
	defer ws.clientsMutex.Unlock()
	for id, client := range ws.clients {
		close(client.send)
		delete(ws.clients, id)
	}
}

// HandleConnection upgrades the request and registers the client. The auth
// middleware has already resolved userID into the context.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userID := userIDInterface.(uuid.UUID)

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket connection: %v", err)
		return
	}

	client := &wsClient{
		id:     uuid.New().String(),
		userID: userID.String(),
		conn:   conn,
		send:   make(chan []byte, 64),
	}

	ws.clientsMutex.Lock()
	ws.clients[client.id] = client
	ws.clientsMutex.Unlock()

	go ws.writePump(client)
	go ws.readPump(client)
}

func (ws *WebSocketService) handleBrokerMessage(msg *nats.Msg) {
	var envelope struct {
		ActorID string `json:"actor_id"`
	}
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		log.Printf("Dropping malformed broker message on %s: %v", msg.Subject, err)
		return
	}

	ws.clientsMutex.RLock()
	defer ws.clientsMutex.RUnlock()
	for _, client := range ws.clients {
		if client.userID != envelope.ActorID {
			continue
		}
		select {
		case client.send <- msg.Data:
		default:
			// Slow consumer, drop the message rather than block the handler.
		}
	}
}

func (ws *WebSocketService) writePump(client *wsClient) {
	defer client.conn.Close()
	for message := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (ws *WebSocketService) readPump(client *wsClient) {
	defer ws.removeClient(client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (ws *WebSocketService) removeClient(client *wsClient) {
	ws.clientsMutex.Lock()
	defer ws.clientsMutex.Unlock()
	if _, ok := ws.clients[client.id]; ok {
		close(client.send)
		delete(ws.clients, client.id)
	}
}

var WebSocketServiceInstance WebSocketServiceInterface
