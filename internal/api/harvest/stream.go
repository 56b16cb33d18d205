package harvest

import (
	dto "harvest_slots/internal/api/dto/harvest"
	"harvest_slots/internal/converter"
	"harvest_slots/internal/middleware"
	"harvest_slots/internal/model"
	"harvest_slots/pkg/resp"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	broadcastBuffer = 100
	clientBuffer    = 16
	writeWait       = 10 * time.Second
)

type client struct {
	userID int
	conn   *websocket.Conn
	send   chan dto.StreamMessage
}

type countQuery struct {
	userID int
	reply  chan int
}

// Hub рассылает завершенные спины websocket-подключениям игрока
type Hub struct {
	upgrader websocket.Upgrader

	clients    map[int]map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan model.SpinEvent
	count      chan countQuery

	done      chan struct{}
	closeOnce sync.Once
}

func NewHub() *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:    make(map[int]map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan model.SpinEvent, broadcastBuffer),
		count:      make(chan countQuery),
		done:       make(chan struct{}),
	}

	go h.run()

	return h
}

// Publish ставит событие в очередь рассылки. Спин не ждет websocket:
// при переполненной очереди событие отбрасывается
func (h *Hub) Publish(ev model.SpinEvent) {
	select {
	case h.broadcast <- ev:
	case <-h.done:
	default:
		log.WithField("user_id", ev.UserID).Warn("stream queue is full, dropping spin event")
	}
}

// ServeWS - GET /harvest/stream. Должен стоять после Auth
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, model.ErrNoUser.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("failed to upgrade to websocket")
		return
	}

	c := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan dto.StreamMessage, clientBuffer),
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// Connections - число открытых подключений игрока
func (h *Hub) Connections(userID int) int {
	q := countQuery{userID: userID, reply: make(chan int, 1)}
	select {
	case h.count <- q:
		return <-q.reply
	case <-h.done:
		return 0
	}
}

// Close закрывает все подключения и останавливает рассылку
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[*client]struct{})
			}
			h.clients[c.userID][c] = struct{}{}
			log.WithField("user_id", c.userID).Debug("stream client registered")

		case c := <-h.unregister:
			h.drop(c)

		case ev := <-h.broadcast:
			msg := converter.ToStreamMessage(ev)
			for c := range h.clients[ev.UserID] {
				select {
				case c.send <- msg:
				default:
					// Клиент не успевает читать
					h.drop(c)
				}
			}

		case q := <-h.count:
			q.reply <- len(h.clients[q.userID])

		case <-h.done:
			for _, set := range h.clients {
				for c := range set {
					h.drop(c)
				}
			}
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	log.WithField("user_id", c.userID).Debug("stream client unregistered")
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			log.WithError(err).WithField("user_id", c.userID).Debug("stream write failed")
			h.leave(c)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// readPump нужен только для обработки close/ping от клиента
func (h *Hub) readPump(c *client) {
	defer h.leave(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).WithField("user_id", c.userID).Debug("stream closed unexpectedly")
			}
			return
		}
	}
}

func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
