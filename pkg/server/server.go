// Package server streams gauge frames to websocket clients and lets them
// move the gauge.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/roffe/speedometer/pkg/gaugestate"
	"github.com/roffe/speedometer/pkg/logger"
	"github.com/roffe/speedometer/pkg/render"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	cell     *gaugestate.Cell
	opts     render.Options
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func New(cell *gaugestate.Cell, opts render.Options) *Server {
	return &Server{
		cell: cell,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: logger.With("server"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/frame", s.handleFrame)
	mux.HandleFunc("/gauge.png", s.handlePNG)
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		s.log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	errg.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return errg.Wait()
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newFrameMessage(s.cell.Frame())); err != nil {
		s.log.Error().Err(err).Msg("encode frame")
	}
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	value := s.cell.Value()
	if q := r.URL.Query().Get("value"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			http.Error(w, "invalid value", http.StatusBadRequest)
			return
		}
		value = v
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.Encode(w, s.cell.Config(), value, s.opts); err != nil {
		s.log.Error().Err(err).Msg("render png")
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("upgrade")
		return
	}
	s.log.Info().Str("remote", r.RemoteAddr).Msg("new connection")
	if err := s.handleClient(r.Context(), conn); err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("client error")
	}
	s.log.Info().Str("remote", r.RemoteAddr).Msg("client disconnected")
}

func (s *Server) handleClient(parent context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	cctx, cancel := context.WithCancel(parent)
	defer cancel()
	errg, ctx := errgroup.WithContext(cctx)

	// holds only the newest value so a slow client skips frames instead of lagging
	values := make(chan float64, 1)
	unsubscribe := s.cell.OnChange(func(v float64) {
		select {
		case values <- v:
		default:
			select {
			case <-values:
			default:
			}
			select {
			case values <- v:
			default:
			}
		}
	})
	defer unsubscribe()
	replies := make(chan *ErrorMessage, 8)

	errg.Go(func() error {
		defer cancel()
		for {
			var cmd Command
			if err := conn.ReadJSON(&cmd); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || ctx.Err() != nil {
					return nil
				}
				return err
			}
			s.log.Debug().Stringer("command", cmd).Msg("received")
			switch cmd.Type {
			case MessageTypeSet:
				s.cell.Set(cmd.Value)
			case MessageTypeZero:
				s.cell.Zero()
			case MessageTypeMax:
				s.cell.Max()
			default:
				select {
				case replies <- &ErrorMessage{Type: MessageTypeError, Message: "unknown command " + string(cmd.Type)}:
				default:
				}
			}
		}
	})

	errg.Go(func() error {
		defer cancel()
		if err := s.write(conn, newLayoutMessage(s.cell.Config())); err != nil {
			return err
		}
		for {
			select {
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeTimeout))
				return nil
			case v := <-values:
				if err := s.write(conn, newFrameMessage(gaugestate.NewFrame(s.cell.Config(), v))); err != nil {
					return err
				}
			case msg := <-replies:
				if err := s.write(conn, msg); err != nil {
					return err
				}
			}
		}
	})

	errg.Go(func() error {
		<-ctx.Done()
		// unblocks the reader
		return conn.SetReadDeadline(time.Now())
	})

	return errg.Wait()
}

func (s *Server) write(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
