package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cplayer11/video-highlight-tool/config"
	"github.com/cplayer11/video-highlight-tool/handlers"
	"github.com/cplayer11/video-highlight-tool/internal/mediaprobe"
	"github.com/cplayer11/video-highlight-tool/internal/session"
	"github.com/cplayer11/video-highlight-tool/internal/store"
	"github.com/cplayer11/video-highlight-tool/internal/transcript"
	"github.com/cplayer11/video-highlight-tool/middleware"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg.Log.Level)

	uploads, err := store.NewUploadStore(afero.NewOsFs(), cfg.Uploads.Dir)
	if err != nil {
		return err
	}

	sessions, err := session.NewManager(log, session.Config{
		MaxSessions:  cfg.Sessions.Max,
		TickInterval: cfg.Playback.TickInterval(),
		GapRate:      cfg.Playback.GapRate,
		SeekEpsilon:  cfg.Playback.SeekEpsilon,
	})
	if err != nil {
		return err
	}
	defer sessions.Shutdown()

	gen := transcript.NewGenerator(time.Now().UnixNano())
	h := handlers.NewApplicationHandler(log, gen, mediaprobe.FFProbe{}, uploads, sessions)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(log))
	h.RegisterRoutes(app)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("listen", cfg.Server.Listen).Info("Starting highlight tool API")
		errCh <- app.Listen(cfg.Server.Listen)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down")
		return app.Shutdown()
	}
}
