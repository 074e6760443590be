package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cplayer11/video-highlight-tool/internal/transcript"
	"github.com/cplayer11/video-highlight-tool/models"
	"github.com/cplayer11/video-highlight-tool/utils"
)

// transcriptRequest is the transcript boundary's request body. Duration is
// a pointer so a missing field is distinguishable from zero.
type transcriptRequest struct {
	Duration *float64 `json:"duration" validate:"required"`
}

// GenerateTranscript handles POST /api/v1/transcript. The response uses
// the boundary's own wire format: {"transcript": [...]} on success,
// {"error": "..."} on failure.
func (h *ApplicationHandler) GenerateTranscript(c *fiber.Ctx) error {
	var req transcriptRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.TranscriptError{Error: transcript.ErrBadDuration.Error()})
	}
	if err := h.Validate.Struct(req); err != nil {
		h.Logger.WithField("violations", utils.FormatValidationErrors(err)).Warn("Transcript request failed validation")
		return c.Status(fiber.StatusBadRequest).JSON(models.TranscriptError{Error: transcript.ErrBadDuration.Error()})
	}

	sections, err := h.Generator.Generate(*req.Duration)
	if err != nil {
		if errors.Is(err, transcript.ErrBadDuration) || errors.Is(err, transcript.ErrTooShort) {
			return c.Status(fiber.StatusBadRequest).JSON(models.TranscriptError{Error: err.Error()})
		}
		h.Logger.WithError(err).Error("Transcript generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(models.TranscriptError{Error: "transcript generation failed"})
	}

	return c.Status(fiber.StatusOK).JSON(models.TranscriptResponse{Transcript: sections})
}
