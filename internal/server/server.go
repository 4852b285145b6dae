// Package server exposes a running driver over HTTP and websockets.
//
//	GET  /healthz       - liveness
//	GET  /api/snapshot  - current frame
//	POST /api/commands  - submit one command, returns the result
//	GET  /ws            - frame stream; commands may be sent on the socket
//	GET  /metrics       - Prometheus metrics
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SeamusWaldron/cubeanim/internal/driver"
	"github.com/SeamusWaldron/cubeanim/internal/metrics"
)

// Message is the envelope for everything written to a websocket client.
type Message struct {
	Type     string         `json:"type"` // hello, frame, result
	ClientID string         `json:"client_id,omitempty"`
	Frame    *driver.Frame  `json:"frame,omitempty"`
	Result   *driver.Result `json:"result,omitempty"`
}

// Server routes HTTP requests to a driver.
type Server struct {
	driver   *driver.Driver
	metrics  *metrics.Metrics
	logger   *slog.Logger
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// New builds the router. m may be nil, in which case /metrics is not served.
func New(d *driver.Driver, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		driver:  d,
		metrics: m,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 64 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api")
	{
		api.GET("/snapshot", s.handleSnapshot)
		api.POST("/commands", s.handleCommand)
	}
	router.GET("/ws", s.handleWebSocket)
	if m != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	s.engine = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	res, err := s.driver.Submit(c.Request.Context(), driver.Command{Type: driver.CmdSnapshot})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res.Frame)
}

func (s *Server) handleCommand(c *gin.Context) {
	var cmd driver.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.driver.Submit(c.Request.Context(), cmd)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	// A rejected command is not an error; a malformed one is.
	status := http.StatusOK
	if res.Error != "" {
		status = http.StatusBadRequest
	}
	c.JSON(status, res)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("failed to upgrade the websocket", "error", err)
		return
	}
	defer ws.Close()

	clientID := uuid.New().String()
	log := s.logger.With("client_id", clientID)
	log.Info("websocket client connected")

	frames, unsubscribe := s.driver.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Only this goroutine writes to ws; the reader hands results over.
	results := make(chan driver.Result, 4)
	go func() {
		defer cancel()
		for {
			var cmd driver.Command
			if err := ws.ReadJSON(&cmd); err != nil {
				log.Info("websocket client disconnected", "error", err.Error())
				return
			}
			res, err := s.driver.Submit(ctx, cmd)
			if err != nil {
				return
			}
			select {
			case results <- res:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := ws.WriteJSON(Message{Type: "hello", ClientID: clientID}); err != nil {
		return
	}

	for {
		var msg Message
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			msg = Message{Type: "frame", Frame: &f}
		case res := <-results:
			msg = Message{Type: "result", Result: &res}
		}
		if err := ws.WriteJSON(msg); err != nil {
			log.Warn("failed to write websocket message", "error", err)
			return
		}
	}
}
