package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cplayer11/video-highlight-tool/internal/session"
	"github.com/cplayer11/video-highlight-tool/internal/transcript"
	"github.com/cplayer11/video-highlight-tool/models"
	"github.com/cplayer11/video-highlight-tool/utils"
)

// uploadResponse is returned after a successful upload: the new session
// plus everything the client needs to render the first frame of state.
type uploadResponse struct {
	SessionID   string           `json:"session_id"`
	Duration    float64          `json:"duration"`
	Transcript  []models.Section `json:"transcript"`
	Highlights  []string         `json:"highlight_ids"`
	InitialTime float64          `json:"initial_time"`
}

// UploadVideo handles POST /api/v1/videos/upload. The whole
// probe-then-transcribe pipeline must succeed before any session state is
// replaced; a failure releases the stored object and leaves previously
// created sessions untouched.
func (h *ApplicationHandler) UploadVideo(c *fiber.Ctx) error {
	epoch := h.Sessions.Begin()

	file, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No file uploaded.")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		h.Logger.WithField("content_type", contentType).Warn("Rejected non-video upload")
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Please upload a video file.")
	}

	src, err := file.Open()
	if err != nil {
		h.Logger.WithError(err).Error("Failed to open uploaded file")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not read the uploaded file.")
	}
	defer src.Close()

	objectPath, err := h.Uploads.Put(src, file.Filename)
	if err != nil {
		h.Logger.WithError(err).Error("Failed to store uploaded file")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not store the uploaded file.")
	}

	duration, err := h.Prober.Duration(objectPath)
	if err != nil {
		h.Logger.WithError(err).Warn("Failed to read media metadata")
		h.releaseObject(objectPath)
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Could not read the video's metadata.")
	}

	sections, err := h.Generator.Generate(duration)
	if err != nil {
		h.releaseObject(objectPath)
		if errors.Is(err, transcript.ErrBadDuration) || errors.Is(err, transcript.ErrTooShort) {
			return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
		}
		h.Logger.WithError(err).Error("Transcript generation failed")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not generate a transcript.")
	}

	sess, err := h.Sessions.Install(session.InstallParams{
		Epoch:      epoch,
		Duration:   duration,
		Transcript: sections,
		ObjectPath: objectPath,
		Uploads:    h.Uploads,
	})
	if err != nil {
		h.releaseObject(objectPath)
		if errors.Is(err, session.ErrSuperseded) {
			return utils.RespondWithError(c, fiber.StatusConflict, "A newer upload replaced this one.")
		}
		h.Logger.WithError(err).Error("Failed to install session")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create a playback session.")
	}

	snap := sess.State()
	return utils.RespondWithJSON(c, fiber.StatusCreated, uploadResponse{
		SessionID:   sess.ID,
		Duration:    duration,
		Transcript:  sections,
		Highlights:  snap.HighlightIDs,
		InitialTime: snap.Playback.CurrentTime,
	})
}

func (h *ApplicationHandler) releaseObject(path string) {
	if err := h.Uploads.Remove(path); err != nil {
		h.Logger.WithError(err).Warn("Failed to release upload object")
	}
}
