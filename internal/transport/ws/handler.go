// Package ws serves the tracking hub over WebSocket with JSON {type, ...} messages.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/geo"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/logx"
	"service-tracking/internal/tracking"
)

// Hub is the part of the tracking hub the transport drives.
type Hub interface {
	Connect(ctx context.Context, credentials string) (*tracking.Conn, error)
	Subscribe(ctx context.Context, connID, deliveryID string) (tracking.Snapshot, error)
	Unsubscribe(connID, deliveryID string) error
	Publish(connID string, s domain.LocationSample) (tracking.Outcome, error)
	Ping(connID string) error
	ApplyStatusChange(ctx context.Context, connID, deliveryID string, req lifecycle.Request) (*domain.Delivery, bool, error)
	Disconnect(connID, reason string)
}

// Config tunes the socket handling.
type Config struct {
	AuthTimeout  time.Duration
	WriteWait    time.Duration
	PingInterval time.Duration
	ReadLimit    int64
	// AllowedOrigins empty means any origin.
	AllowedOrigins []string
}

func (c Config) withDefaults() Config {
	if c.AuthTimeout <= 0 {
		c.AuthTimeout = 5 * time.Second
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 20 * time.Second
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = 8192
	}
	return c
}

// Handler upgrades requests and runs one reader and one writer per connection.
type Handler struct {
	hub      Hub
	cfg      Config
	logger   logx.Logger
	upgrader websocket.Upgrader
}

// NewHandler builds a Handler.
func NewHandler(hub Hub, cfg Config, logger logx.Logger) *Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	cfg = cfg.withDefaults()
	h := &Handler{hub: hub, cfg: cfg, logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, o := range h.cfg.AllowedOrigins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// ServeHTTP handles GET /ws.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", logx.Err(err))
		return
	}
	defer ws.Close()
	ws.SetReadLimit(h.cfg.ReadLimit)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn, ok := h.authenticate(ctx, ws)
	if !ok {
		return
	}

	s := &session{
		h:       h,
		ws:      ws,
		conn:    conn,
		replies: make(chan any, 16),
	}
	ws.SetPongHandler(func(string) error {
		_ = h.hub.Ping(conn.ID())
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop()
	}()

	s.readLoop(ctx)
	h.hub.Disconnect(conn.ID(), tracking.ReasonClientClosed)
	// writer exits on Done
	wg.Wait()
}

// authenticate requires an auth message within AuthTimeout.
func (h *Handler) authenticate(ctx context.Context, ws *websocket.Conn) (*tracking.Conn, bool) {
	_ = ws.SetReadDeadline(time.Now().Add(h.cfg.AuthTimeout))

	var msg Inbound
	if err := ws.ReadJSON(&msg); err != nil {
		h.logger.Warn("websocket auth not received", logx.Err(err))
		h.closeWith(ws, websocket.ClosePolicyViolation, "auth timeout")
		return nil, false
	}
	if msg.Type != TypeAuth {
		h.writeDirect(ws, errorReply(msg.RequestID, fmt.Errorf("%w: first message must be auth", apperr.ErrUnauthorized)))
		h.closeWith(ws, websocket.ClosePolicyViolation, "auth required")
		return nil, false
	}

	conn, err := h.hub.Connect(ctx, msg.Token)
	if err != nil {
		h.writeDirect(ws, errorReply(msg.RequestID, err))
		h.closeWith(ws, websocket.ClosePolicyViolation, "auth failed")
		return nil, false
	}
	_ = ws.SetReadDeadline(time.Time{})

	id := conn.Identity()
	if err := h.writeDirect(ws, AuthOK{Type: TypeAuthOK, UserID: id.UserID, Role: string(id.Role)}); err != nil {
		h.hub.Disconnect(conn.ID(), tracking.ReasonClientClosed)
		return nil, false
	}
	return conn, true
}

func (h *Handler) writeDirect(ws *websocket.Conn, v any) error {
	_ = ws.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
	return ws.WriteJSON(v)
}

func (h *Handler) closeWith(ws *websocket.Conn, code int, text string) {
	_ = ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(h.cfg.WriteWait))
}

type session struct {
	h       *Handler
	ws      *websocket.Conn
	conn    *tracking.Conn
	replies chan any
}

func (s *session) readLoop(ctx context.Context) {
	for {
		_, data, err := s.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.h.logger.Warn("websocket read failed",
					logx.String("conn_id", s.conn.ID()),
					logx.Err(err),
				)
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			s.reply(errorReply("", fmt.Errorf("%w: malformed message", apperr.ErrInvalid)))
			continue
		}
		s.handle(ctx, msg)
	}
}

func (s *session) handle(ctx context.Context, msg Inbound) {
	id := s.conn.ID()
	switch msg.Type {
	case TypeSubscribe:
		// the hub queues the "subscribed" snapshot itself
		if _, err := s.h.hub.Subscribe(ctx, id, msg.DeliveryID); err != nil {
			s.reply(errorReply(msg.RequestID, err))
		}

	case TypeUnsubscribe:
		if err := s.h.hub.Unsubscribe(id, msg.DeliveryID); err != nil {
			s.reply(errorReply(msg.RequestID, err))
			return
		}
		s.reply(Reply{Type: TypeAck, RequestID: msg.RequestID, DeliveryID: msg.DeliveryID})

	case TypeLocation:
		sample, err := toSample(msg)
		if err != nil {
			s.reply(errorReply(msg.RequestID, err))
			return
		}
		if _, err := s.h.hub.Publish(id, sample); err != nil {
			s.reply(errorReply(msg.RequestID, err))
		}

	case TypeStatus:
		d, changed, err := s.h.hub.ApplyStatusChange(ctx, id, msg.DeliveryID, lifecycle.Request{
			To:            domain.DeliveryStatus(strings.ToLower(strings.TrimSpace(msg.Status))),
			Description:   msg.Description,
			AdminOverride: msg.AdminOverride,
		})
		if err != nil {
			s.reply(errorReply(msg.RequestID, err))
			return
		}
		s.reply(Reply{Type: TypeAck, RequestID: msg.RequestID, DeliveryID: d.ID, Status: string(d.Status), Changed: &changed})

	case TypePing:
		if err := s.h.hub.Ping(id); err != nil {
			s.reply(errorReply(msg.RequestID, err))
			return
		}
		s.reply(Reply{Type: TypePong, RequestID: msg.RequestID})

	case TypeAuth:
		s.reply(errorReply(msg.RequestID, fmt.Errorf("%w: already authenticated", apperr.ErrInvalid)))

	default:
		s.reply(errorReply(msg.RequestID, fmt.Errorf("%w: unknown message type %q", apperr.ErrInvalid, msg.Type)))
	}
}

// reply never blocks the reader; a client that does not read its replies loses them.
func (s *session) reply(v any) {
	select {
	case s.replies <- v:
	default:
		s.h.logger.Warn("websocket reply dropped", logx.String("conn_id", s.conn.ID()))
	}
}

func (s *session) writeLoop() {
	ticker := time.NewTicker(s.h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case m := <-s.conn.Outbound():
			if err := s.h.writeDirect(s.ws, toWire(m)); err != nil {
				s.fail(err)
				return
			}
		case v := <-s.replies:
			if err := s.h.writeDirect(s.ws, v); err != nil {
				s.fail(err)
				return
			}
		case <-ticker.C:
			if err := s.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.h.cfg.WriteWait)); err != nil {
				s.fail(err)
				return
			}
		case <-s.conn.Done():
			s.flush()
			reason := s.conn.Reason()
			if reason != tracking.ReasonClientClosed {
				s.h.closeWith(s.ws, closeCode(reason), reason)
			}
			// unblocks the reader
			_ = s.ws.Close()
			return
		}
	}
}

// flush writes what the hub queued before it dropped the connection, such as
// tracking_ended.
func (s *session) flush() {
	for {
		select {
		case m := <-s.conn.Outbound():
			if err := s.h.writeDirect(s.ws, toWire(m)); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (s *session) fail(err error) {
	s.h.logger.Warn("websocket write failed",
		logx.String("conn_id", s.conn.ID()),
		logx.Err(err),
	)
	_ = s.ws.Close()
	s.h.hub.Disconnect(s.conn.ID(), tracking.ReasonClientClosed)
}

func closeCode(reason string) int {
	switch reason {
	case tracking.ReasonShutdown:
		return websocket.CloseGoingAway
	case tracking.ReasonSlowConsumer:
		return websocket.CloseTryAgainLater
	default:
		return websocket.ClosePolicyViolation
	}
}

func toSample(msg Inbound) (domain.LocationSample, error) {
	if msg.DeliveryID == "" || msg.Latitude == nil || msg.Longitude == nil || msg.CapturedAt == nil {
		return domain.LocationSample{}, fmt.Errorf("%w: deliveryId, latitude, longitude and capturedAt are required", tracking.ErrRejected)
	}
	return domain.LocationSample{
		DeliveryID: msg.DeliveryID,
		Position:   geo.Point{Lat: *msg.Latitude, Lon: *msg.Longitude},
		Heading:    msg.Heading,
		CapturedAt: msg.CapturedAt.UTC(),
	}, nil
}

func errorReply(requestID string, err error) Reply {
	code := apperr.Code(err)
	msg := err.Error()
	if code == apperr.CodeInternal {
		msg = "internal error"
	}
	return Reply{Type: TypeError, RequestID: requestID, Code: code, Message: msg}
}
