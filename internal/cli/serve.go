package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim/internal/config"
	"github.com/SeamusWaldron/cubeanim/internal/driver"
	"github.com/SeamusWaldron/cubeanim/internal/metrics"
	"github.com/SeamusWaldron/cubeanim/internal/recorder"
	"github.com/SeamusWaldron/cubeanim/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the puzzle over HTTP and websockets",
	Long: `Run the puzzle at the configured frame rate and stream frames to
websocket clients. Each frame carries the 27 slot transforms, the sticker
net and the animation state, so any renderer can draw it.

Endpoints:
  GET  /healthz        - liveness
  GET  /api/snapshot   - current frame
  POST /api/commands   - {"type":"face","face":"F"}, view, toggle, reset, scramble
  GET  /ws             - frame stream; send commands as JSON on the socket
  GET  /metrics        - Prometheus metrics`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	opts := driver.Options{
		Interval: cfg.FrameInterval(),
		Logger:   logger.Logger,
		Metrics:  m,
	}

	var session *recorder.Session
	if cfg.Storage.Journal {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		dir, err := config.Dir()
		if err != nil {
			return err
		}
		stateFile, err := recorder.NewStateFile(recorder.StatePath(dir))
		if err != nil {
			return err
		}
		session = recorder.NewSession(db, stateFile, logger.Logger)
		if _, err := session.Start("serve", version); err != nil {
			return err
		}
		opts.OnCommit = session.Record
		opts.OnReset = session.Reset
	}

	d := driver.New(opts, cfg.PuzzleOptions()...)
	srv := server.New(d, m, logger.Logger)

	driverErr := make(chan error, 1)
	go func() { driverErr <- d.Run(ctx) }()

	serveErr := srv.ListenAndServe(ctx, cfg.Server.Addr)
	stop()
	if err := <-driverErr; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("driver failed", "error", err)
	}

	if session != nil {
		if err := session.End(d.Latest().Solved); err != nil {
			logger.Error("failed to end journal session", "error", err)
		}
	}

	return serveErr
}
