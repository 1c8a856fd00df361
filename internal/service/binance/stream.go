package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/service/prices"
	"github.com/leemthai/zone-sniper-sub000/pkg/logger"

	"github.com/gorilla/websocket"
)

// Stream feeds the live price store from the Binance combined miniTicker
// websocket stream. One long-lived task; it only writes to the store and
// never touches engine state.
type Stream struct {
	wsURL          string
	symbols        []string
	reconnectDelay time.Duration
	store          *prices.Store
	logger         *logger.Logger

	conn *websocket.Conn
}

func NewStream(wsURL string, symbols []string, reconnectDelay time.Duration, store *prices.Store, log *logger.Logger) *Stream {
	return &Stream{
		wsURL:          wsURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		store:          store,
		logger:         log,
	}
}

func (s *Stream) streamURL() string {
	parts := make([]string, 0, len(s.symbols))
	for _, sym := range s.symbols {
		parts = append(parts, strings.ToLower(sym)+"@miniTicker")
	}
	return fmt.Sprintf("%s/stream?streams=%s", strings.TrimRight(s.wsURL, "/"), strings.Join(parts, "/"))
}

func (s *Stream) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.streamURL(), nil)
	if err != nil {
		return fmt.Errorf("binance stream connect: %w", err)
	}
	s.conn = conn
	s.logger.Info("binance stream connected", logger.Int("symbols", len(s.symbols)))
	return nil
}

type miniTicker struct {
	Symbol string `json:"s"`
	Close  string `json:"c"`
}

type combinedFrame struct {
	Stream string     `json:"stream"`
	Data   miniTicker `json:"data"`
}

// Run reads ticker frames until the context ends, reconnecting with a fixed
// delay on any read or dial failure.
func (s *Stream) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if err := s.connect(ctx); err != nil {
			s.logger.Warn("binance stream dial failed", logger.Error(err))
			if !s.sleep(ctx) {
				return
			}
			continue
		}
		s.readLoop(ctx)
		_ = s.Close()
		if !s.sleep(ctx) {
			return
		}
	}
}

func (s *Stream) readLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		_, b, err := s.conn.ReadMessage()
		if err != nil {
			s.logger.Warn("binance stream read failed", logger.Error(err))
			return
		}
		var frame combinedFrame
		if err := json.Unmarshal(b, &frame); err != nil {
			// ignore non-ticker frames
			continue
		}
		if frame.Data.Symbol == "" {
			continue
		}
		price, err := strconv.ParseFloat(frame.Data.Close, 64)
		if err != nil {
			continue
		}
		s.store.Set(frame.Data.Symbol, price)
	}
}

func (s *Stream) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(s.reconnectDelay):
		return true
	}
}

// Close closes the websocket connection.
func (s *Stream) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
