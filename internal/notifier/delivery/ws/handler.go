package ws

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/woongiiit/DailyQuest-Backend/config"
	"github.com/woongiiit/DailyQuest-Backend/internal/middleware"
	"github.com/woongiiit/DailyQuest-Backend/internal/notifier"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
	"github.com/woongiiit/DailyQuest-Backend/pkg/utils"
)

const (
	sessionBuffer = 16
	writeTimeout  = 10 * time.Second
)

type Handler struct {
	hub      *notifier.Hub
	cfg      config.Config
	logger   logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *notifier.Hub, cfg config.Config, logger logger.Logger) *Handler {
	return &Handler{
		hub:    hub,
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || cfg.Server.CORSOrigin == "*" || origin == cfg.Server.CORSOrigin
			},
		},
	}
}

// Serve upgrades the request and binds the connection to its user in
// the hub. Browsers cannot set headers on websocket dials, so the token
// is also accepted as a query parameter.
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if token == "" {
		middleware.AbortWithError(c, errors.Unauthorized("missing token"))
		return
	}

	userID, err := utils.ParseJWTToken(token, h.cfg)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		h.logger.Warn("websocket upgrade failed", "user_id", userID, "err", err)
		return
	}

	connID := uuid.NewString()
	s := newSession(conn)

	h.hub.Register(connID, userID, s)
	h.logger.Info("websocket connected", "user_id", userID, "conn_id", connID)

	go s.writeLoop(h.logger)
	go h.readLoop(s, connID, userID)
}

// readLoop only watches for the client going away; inbound frames are
// discarded because all mutations travel over the HTTP API.
func (h *Handler) readLoop(s *session, connID string, userID uuid.UUID) {
	defer func() {
		h.hub.Unregister(connID, userID)
		s.close()
		h.logger.Info("websocket disconnected", "user_id", userID, "conn_id", connID)
	}()

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

type session struct {
	conn      *websocket.Conn
	out       chan notifier.Event
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn) *session {
	return &session{
		conn: conn,
		out:  make(chan notifier.Event, sessionBuffer),
		done: make(chan struct{}),
	}
}

// Send queues the event without blocking. A full buffer drops it, per
// the fire-and-forget contract.
func (s *session) Send(event notifier.Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.out <- event:
		return true
	default:
		return false
	}
}

func (s *session) writeLoop(log logger.Logger) {
	defer s.conn.Close()

	for {
		select {
		case event := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(event); err != nil {
				log.Warn("websocket write failed", "err", err)
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}
