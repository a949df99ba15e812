package eventfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jeffjr007/locahubaju-project/internal/integrations/notifier"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// Message событие, отправляемое подписчикам ленты
type Message struct {
	Type    string           `json:"type"`
	Payload notifier.Payload `json:"payload"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub лента событий жизненного цикла для администраторов.
// Реализует notifier.Driver: каждое доставленное событие рассылается всем подключённым клиентам
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	logger  Logger
}

func NewHub(logger Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Name() string {
	return "websocket"
}

// Send рассылает payload. Медленные клиенты пропускают событие
func (h *Hub) Send(ctx context.Context, n notifier.Notification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", notifier.ErrDelivery, err)
	}

	data, err := json.Marshal(Message{Type: string(n.Event.Kind), Payload: n.Payload})
	if err != nil {
		return fmt.Errorf("%w: %v", notifier.ErrEncode, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return fmt.Errorf("%w: no subscribers", notifier.ErrSkipped)
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("eventfeed: client %s is too slow, dropping %s event", c.userID, n.Event.Kind)
		}
	}
	return nil
}

// Clients количество подключённых клиентов
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve регистрирует соединение и блокируется до его закрытия
func (h *Hub) Serve(conn *websocket.Conn, userID string) {
	c := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}

	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	h.logger.Info("eventfeed: user %s subscribed", userID)

	go h.writePump(c)
	h.readPump(c)
}

// Close отключает всех клиентов и перестаёт принимать новых
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	return nil
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Info("eventfeed: user %s unsubscribed", c.userID)
	}
}

// readPump клиенты ничего не присылают, чтение нужно только для pong и обнаружения разрыва
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("eventfeed: user %s read error: %v", c.userID, err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
