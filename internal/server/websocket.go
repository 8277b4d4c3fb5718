package server

import (
	"bytes"
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/scenario"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Reply is sent for every frame: the scenario result, or why the frame was rejected.
type Reply struct {
	Session string           `json:"session"`
	Seq     int64            `json:"seq"`
	Result  *scenario.Result `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Upgrade failed", log.Error(err))
		return
	}
	defer conn.Close()

	session := &Session{
		ID:          uuid.NewString(),
		RemoteAddr:  conn.RemoteAddr().String(),
		ConnectedAt: time.Now(),
	}
	s.sessions.Store(session.ID, session)
	atomic.AddInt64(&s.sessionCount, 1)
	defer func() {
		s.sessions.Delete(session.ID)
		atomic.AddInt64(&s.sessionCount, -1)
	}()

	logger := s.logger.With(log.String("session", session.ID))
	logger.Info("Client connected", log.String("remote_addr", session.RemoteAddr))

	conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		if s.config.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		}
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Read failed", log.Error(err))
			}
			logger.Info("Client disconnected", log.Int64("requests", atomic.LoadInt64(&session.Requests)))
			return
		}

		reply := s.handleFrame(r.Context(), session, kind, data)
		if s.config.WriteTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		}
		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("Write failed", log.Error(err))
			return
		}
	}
}

func (s *Server) handleFrame(ctx context.Context, session *Session, kind int, data []byte) Reply {
	reply := Reply{Session: session.ID, Seq: atomic.AddInt64(&session.Requests, 1)}
	if kind != websocket.TextMessage {
		reply.Error = errors.Wrap(ErrInvalidMessage, "scenario documents are sent as text frames").Error()
		return reply
	}

	doc, err := scenario.LoadJSON(bytes.NewReader(data))
	if err != nil {
		reply.Error = errors.Wrap(ErrInvalidMessage, err.Error()).Error()
		return reply
	}
	res, err := s.runner.Run(ctx, doc)
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	atomic.AddInt64(&s.handled, 1)
	reply.Result = res
	return reply
}
