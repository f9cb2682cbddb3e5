// Package client implements a headless table client: a realtime socket to
// the Nakama server, a versioned snapshot store, a viewer-relative table
// projection and a turn dispatcher that can drive a bot seat.
package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/heroiclabs/nakama-common/rtapi"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
)

// MatchDataHandler receives match data pushed by the server.
type MatchDataHandler func(matchID string, opCode int64, data []byte)

// SocketConfig configures a realtime connection.
type SocketConfig struct {
	// URL is the realtime endpoint, e.g. "ws://127.0.0.1:7350/ws".
	URL string
	// Token is the Nakama session token.
	Token string
	// MaxReconnects bounds the reconnect attempts after a dropped
	// connection. Zero disables reconnecting.
	MaxReconnects int
	// BaseBackoff is the first reconnect delay; it doubles per attempt up
	// to 30s. Defaults to 500ms.
	BaseBackoff time.Duration

	Logger *zap.Logger
}

var ErrSocketClosed = errors.New("socket closed")

// Socket is a realtime connection speaking protobuf-JSON envelopes over a
// websocket, matching the Nakama protocol.
type Socket struct {
	cfg    SocketConfig
	logger *zap.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	closed  bool
	handler MatchDataHandler

	cid uint64
}

// NewSocket creates a socket; call Connect before use.
func NewSocket(cfg SocketConfig) *Socket {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 500 * time.Millisecond
	}
	return &Socket{cfg: cfg, logger: cfg.Logger.Named("socket")}
}

// OnMatchData registers the handler invoked for every match data message.
func (s *Socket) OnMatchData(h MatchDataHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// Connect dials the realtime endpoint and starts the read loop.
func (s *Socket) Connect(ctx context.Context) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.closed = false
	s.mu.Unlock()

	go s.readLoop(ctx)
	return nil
}

func (s *Socket) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid socket url: %w", err)
	}
	q := u.Query()
	q.Set("token", s.cfg.Token)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial realtime socket: %w", err)
	}
	s.logger.Info("connected", zap.String("url", u.Host))
	return conn, nil
}

// Close shuts the socket down; no reconnect is attempted afterwards.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// JoinMatch asks the server to seat this session at the given match.
func (s *Socket) JoinMatch(matchID string) error {
	env := &rtapi.Envelope{
		Cid: s.nextCid(),
		Message: &rtapi.Envelope_MatchJoin{
			MatchJoin: &rtapi.MatchJoin{
				Id: &rtapi.MatchJoin_MatchId{MatchId: matchID},
			},
		},
	}
	return s.send(env)
}

// LeaveMatch detaches this session from the match.
func (s *Socket) LeaveMatch(matchID string) error {
	env := &rtapi.Envelope{
		Cid: s.nextCid(),
		Message: &rtapi.Envelope_MatchLeave{
			MatchLeave: &rtapi.MatchLeave{MatchId: matchID},
		},
	}
	return s.send(env)
}

// SendMatchData sends an opcode-tagged payload to the match handler.
func (s *Socket) SendMatchData(matchID string, opCode int64, data []byte) error {
	env := &rtapi.Envelope{
		Message: &rtapi.Envelope_MatchDataSend{
			MatchDataSend: &rtapi.MatchDataSend{
				MatchId:  matchID,
				OpCode:   opCode,
				Data:     data,
				Reliable: true,
			},
		},
	}
	return s.send(env)
}

func (s *Socket) send(env *rtapi.Envelope) error {
	payload, err := protojson.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.conn == nil {
		return ErrSocketClosed
	}
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *Socket) nextCid() string {
	return fmt.Sprintf("%d", atomic.AddUint64(&s.cid, 1))
}

func (s *Socket) readLoop(ctx context.Context) {
	for {
		s.mu.Lock()
		conn := s.conn
		closed := s.closed
		s.mu.Unlock()
		if closed || conn == nil {
			return
		}

		_, payload, err := conn.ReadMessage()
		if err != nil {
			s.logger.Warn("read failed", zap.Error(err))
			if !s.reconnect(ctx) {
				return
			}
			continue
		}

		env := &rtapi.Envelope{}
		if err := protojson.Unmarshal(payload, env); err != nil {
			s.logger.Warn("bad envelope", zap.Error(err))
			continue
		}
		s.route(env)
	}
}

func (s *Socket) route(env *rtapi.Envelope) {
	switch msg := env.Message.(type) {
	case *rtapi.Envelope_MatchData:
		s.mu.Lock()
		h := s.handler
		s.mu.Unlock()
		if h != nil {
			h(msg.MatchData.MatchId, msg.MatchData.OpCode, msg.MatchData.Data)
		}
	case *rtapi.Envelope_Match:
		s.logger.Info("joined match", zap.String("match_id", msg.Match.MatchId))
	case *rtapi.Envelope_Error:
		s.logger.Error("server error",
			zap.Int32("code", msg.Error.Code),
			zap.String("message", msg.Error.Message))
	default:
		// Pings, presence events and acks carry nothing the table needs.
	}
}

// reconnect re-dials with bounded exponential backoff and a little jitter.
// It reports whether a connection was re-established.
func (s *Socket) reconnect(ctx context.Context) bool {
	backoff := s.cfg.BaseBackoff
	for attempt := 1; attempt <= s.cfg.MaxReconnects; attempt++ {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return false
		}
		s.mu.Unlock()

		jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff + jitter):
		}

		conn, err := s.dial(ctx)
		if err == nil {
			s.mu.Lock()
			s.conn = conn
			s.mu.Unlock()
			s.logger.Info("reconnected", zap.Int("attempt", attempt))
			return true
		}
		s.logger.Warn("reconnect failed", zap.Int("attempt", attempt), zap.Error(err))

		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
	}
	s.logger.Error("reconnect attempts exhausted")
	return false
}
