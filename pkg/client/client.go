// Package client drives a gauge served by pkg/server over its websocket feed.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/gorilla/websocket"
	"github.com/roffe/speedometer/pkg/logger"
	"github.com/roffe/speedometer/pkg/server"
	"github.com/rs/zerolog"
)

var (
	ErrServer   = errors.New("server error")
	ErrNoLayout = errors.New("expected layout message")
)

const (
	DefaultRetry  = 4
	retryDelay    = 1500 * time.Millisecond
	writeDeadline = 5 * time.Second
)

type Client struct {
	conn   *websocket.Conn
	layout *server.LayoutMessage
	log    zerolog.Logger

	wmu sync.Mutex
}

// Dial connects to url, retrying up to attempts times, and waits for the
// layout the server sends first.
func Dial(ctx context.Context, url string, attempts int) (*Client, error) {
	if attempts <= 0 {
		attempts = DefaultRetry
	}
	log := logger.With("client")

	var conn *websocket.Conn
	err := retry.Do(func() error {
		c, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Unrecoverable(ctx.Err())
			}
			return err
		}
		conn = c
		return nil
	},
		retry.Context(ctx),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(retryDelay),
		retry.Attempts(uint(attempts)),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n+1).Err(err).Str("url", url).Msg("dial failed, retrying")
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{conn: conn, log: log}
	typ, data, err := c.next()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if typ != server.MessageTypeLayout {
		conn.Close()
		return nil, fmt.Errorf("%w, got %q", ErrNoLayout, typ)
	}
	c.layout = &server.LayoutMessage{}
	if err := json.Unmarshal(data, c.layout); err != nil {
		conn.Close()
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	log.Info().Str("url", url).Stringer("gauge", c.layout.Config).Msg("connected")
	return c, nil
}

// Layout is the gauge geometry announced by the server.
func (c *Client) Layout() *server.LayoutMessage { return c.layout }

func (c *Client) Set(v float64) error {
	return c.send(server.Command{Type: server.MessageTypeSet, Value: v})
}

func (c *Client) Zero() error { return c.send(server.Command{Type: server.MessageTypeZero}) }

func (c *Client) Max() error { return c.send(server.Command{Type: server.MessageTypeMax}) }

func (c *Client) send(cmd server.Command) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return err
	}
	c.log.Debug().Stringer("command", cmd).Msg("send")
	return c.conn.WriteJSON(cmd)
}

// ReadFrame blocks until the next frame. Error replies are returned wrapping ErrServer.
func (c *Client) ReadFrame() (*server.FrameMessage, error) {
	for {
		typ, data, err := c.next()
		if err != nil {
			return nil, err
		}
		switch typ {
		case server.MessageTypeFrame:
			var f server.FrameMessage
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, fmt.Errorf("decode frame: %w", err)
			}
			return &f, nil
		case server.MessageTypeError:
			var e server.ErrorMessage
			if err := json.Unmarshal(data, &e); err != nil {
				return nil, fmt.Errorf("decode error: %w", err)
			}
			return nil, fmt.Errorf("%w: %s", ErrServer, e.Message)
		default:
			c.log.Debug().Str("type", string(typ)).Msg("skipping message")
		}
	}
}

func (c *Client) next() (server.MessageType, []byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return "", nil, err
	}
	var head struct {
		Type server.MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", nil, fmt.Errorf("decode message: %w", err)
	}
	return head.Type, data, nil
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	c.wmu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeDeadline))
	c.wmu.Unlock()
	return c.conn.Close()
}
