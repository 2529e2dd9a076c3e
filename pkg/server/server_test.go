package server_test

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/roffe/speedometer/pkg/ebus"
	"github.com/roffe/speedometer/pkg/gaugemath"
	"github.com/roffe/speedometer/pkg/gaugestate"
	"github.com/roffe/speedometer/pkg/render"
	"github.com/roffe/speedometer/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*httptest.Server, *gaugestate.Cell) {
	t.Helper()
	cfg, err := gaugemath.NewConfig(225, 100, 10)
	require.NoError(t, err)
	bus := ebus.New()
	t.Cleanup(bus.Close)
	cell := gaugestate.NewCell(cfg, bus, "", 25)
	ts := httptest.NewServer(server.New(cell, render.Options{Width: 100, Height: 100}).Handler())
	t.Cleanup(ts.Close)
	return ts, cell
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type envelope struct {
	Type    string  `json:"type"`
	Value   float64 `json:"value"`
	Angle   float64 `json:"angle"`
	Percent int     `json:"percent"`
	Color   string  `json:"color"`
	Message string  `json:"message"`
	Ticks   []struct {
		Index int    `json:"index"`
		Major bool   `json:"major"`
		Color string `json:"color"`
	} `json:"ticks"`
	Labels []struct {
		Text string `json:"text"`
	} `json:"labels"`
}

func read(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m envelope
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

// readFrame skips frames until one with want arrives.
func readFrame(t *testing.T, conn *websocket.Conn, want float64) envelope {
	t.Helper()
	for {
		m := read(t, conn)
		if m.Type == "frame" && m.Value == want {
			return m
		}
	}
}

func TestWebsocketFeed(t *testing.T) {
	ts, cell := newServer(t)
	conn := dial(t, ts)

	layout := read(t, conn)
	assert.Equal(t, "layout", layout.Type)
	require.Len(t, layout.Ticks, 21)
	assert.True(t, layout.Ticks[0].Major)
	assert.Equal(t, "#00ff00", layout.Ticks[0].Color)
	assert.Equal(t, "#ff0000", layout.Ticks[20].Color)
	require.Len(t, layout.Labels, 11)
	assert.Equal(t, "100", layout.Labels[10].Text)

	first := readFrame(t, conn, 25)
	assert.Equal(t, 33.75, first.Angle)
	assert.Equal(t, 25, first.Percent)

	require.NoError(t, conn.WriteJSON(server.Command{Type: server.MessageTypeSet, Value: 150}))
	maxed := readFrame(t, conn, 100)
	assert.Equal(t, 202.5, maxed.Angle)
	assert.Equal(t, "#ff0000", maxed.Color)
	assert.Equal(t, 100.0, cell.Value())

	require.NoError(t, conn.WriteJSON(server.Command{Type: server.MessageTypeZero}))
	readFrame(t, conn, 0)

	require.NoError(t, conn.WriteJSON(server.Command{Type: server.MessageTypeMax}))
	readFrame(t, conn, 100)

	cell.Set(40)
	readFrame(t, conn, 40)
}

func TestWebsocketUnknownCommand(t *testing.T) {
	ts, _ := newServer(t)
	conn := dial(t, ts)
	require.NoError(t, conn.WriteJSON(server.Command{Type: "launch"}))
	for {
		m := read(t, conn)
		if m.Type == "error" {
			assert.Contains(t, m.Message, "launch")
			return
		}
	}
}

func TestFrameEndpoint(t *testing.T) {
	ts, _ := newServer(t)
	resp, err := http.Get(ts.URL + "/frame")
	require.NoError(t, err)
	defer resp.Body.Close()

	var m envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "frame", m.Type)
	assert.Equal(t, 25.0, m.Value)
}

func TestPNGEndpoint(t *testing.T) {
	ts, _ := newServer(t)

	resp, err := http.Get(ts.URL + "/gauge.png?value=60")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	bad, err := http.Get(ts.URL + "/gauge.png?value=fast")
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}
