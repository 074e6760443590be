package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/cplayer11/video-highlight-tool/internal/mediaprobe"
	"github.com/cplayer11/video-highlight-tool/internal/session"
	"github.com/cplayer11/video-highlight-tool/internal/store"
	"github.com/cplayer11/video-highlight-tool/models"
)

// TranscriptGenerator is the transcript acquisition boundary. The mock
// generator satisfies it; a real ASR backend could replace it without
// touching the handlers.
type TranscriptGenerator interface {
	Generate(duration float64) ([]models.Section, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Logger    *logrus.Logger
	Validate  *validator.Validate
	Generator TranscriptGenerator
	Prober    mediaprobe.Prober
	Uploads   *store.UploadStore
	Sessions  *session.Manager
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(log *logrus.Logger, gen TranscriptGenerator, prober mediaprobe.Prober, uploads *store.UploadStore, sessions *session.Manager) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:    log,
		Validate:  validator.New(),
		Generator: gen,
		Prober:    prober,
		Uploads:   uploads,
		Sessions:  sessions,
	}
}
