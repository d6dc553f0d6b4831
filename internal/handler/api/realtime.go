package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"AvoDash/internal/domain/models"
	xhttp "AvoDash/pkg/http"
	xlogger "AvoDash/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Stream upgrades to a websocket. Each text frame carries a ChartsRequest as
// JSON and is answered by exactly one StreamMessage, in order.
func (h *DashboardHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	key := fmt.Sprintf("ws:%s:%p", c.RealIP(), conn)
	defer h.limiter.Forget(key)

	l := h.logger.With(xlogger.String("remote", c.RealIP()))
	l.Debug("websocket connected")

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	go pingLoop(ctx, conn)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.Warn("websocket read failed", xlogger.Error(err))
			}
			l.Debug("websocket closed")
			return nil
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		msg := h.handleFrame(ctx, key, raw)
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			l.Warn("websocket write failed", xlogger.Error(err))
			return nil
		}
	}
}

func (h *DashboardHandler) handleFrame(ctx context.Context, key string, raw []byte) models.StreamMessage {
	if !h.limiter.Allow(key) {
		h.recordError("rate_limited")
		return streamError(xhttp.ValidationError{Code: "ERR_RATE_LIMITED", Message: "too many requests"})
	}

	req := &models.ChartsRequest{}
	if err := json.Unmarshal(raw, req); err != nil {
		h.recordError("bad_request")
		return streamError(xhttp.ValidationError{Code: "ERR_DECODE", Message: err.Error()})
	}
	if verr := xhttp.ValidateStruct(ctx, req); verr != nil {
		h.recordError("bad_request")
		return models.StreamMessage{Type: models.StreamError, Errors: verr}
	}

	sel, err := h.uc.Resolve(*req)
	if err != nil {
		h.recordError("bad_request")
		return streamError(xhttp.ValidationError{Code: "ERR_DATETIME", Message: err.Error()})
	}
	return models.StreamMessage{Type: models.StreamCharts, Data: h.charts(ctx, sel)}
}

func streamError(errs ...xhttp.ValidationError) models.StreamMessage {
	return models.StreamMessage{Type: models.StreamError, Errors: errs}
}

// pingLoop keeps idle connections alive. WriteControl is safe to call
// concurrently with the reply writer.
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
