package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cplayer11/video-highlight-tool/internal/playback"
	"github.com/cplayer11/video-highlight-tool/internal/session"
	"github.com/cplayer11/video-highlight-tool/utils"
)

func (h *ApplicationHandler) session(c *fiber.Ctx) (*session.Session, error) {
	sess, err := h.Sessions.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, utils.RespondWithError(c, fiber.StatusNotFound, "Session not found.")
		}
		return nil, utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not load the session.")
	}
	return sess, nil
}

// GetSession handles GET /api/v1/sessions/:id.
func (h *ApplicationHandler) GetSession(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, sess.State())
}

// DeleteSession handles DELETE /api/v1/sessions/:id.
func (h *ApplicationHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.Sessions.Remove(c.Params("id")); err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Session not found.")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// Play handles POST /api/v1/sessions/:id/play.
func (h *ApplicationHandler) Play(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	if err := sess.Play(); err != nil {
		if errors.Is(err, playback.ErrNoMedia) {
			return utils.RespondWithError(c, fiber.StatusConflict, "No media loaded.")
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not start playback.")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, sess.State())
}

// Pause handles POST /api/v1/sessions/:id/pause.
func (h *ApplicationHandler) Pause(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	if err := sess.Pause(); err != nil {
		if errors.Is(err, playback.ErrNoMedia) {
			return utils.RespondWithError(c, fiber.StatusConflict, "No media loaded.")
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not pause playback.")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, sess.State())
}

type seekRequest struct {
	Time *float64 `json:"time" validate:"required,gte=0"`
}

// Seek handles POST /api/v1/sessions/:id/seek.
func (h *ApplicationHandler) Seek(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req seekRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid seek request.")
	}
	if err := h.Validate.Struct(req); err != nil {
		h.Logger.WithField("violations", utils.FormatValidationErrors(err)).Warn("Seek request failed validation")
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid seek request.")
	}

	sess.SeekTo(*req.Time)
	return utils.RespondWithJSON(c, fiber.StatusOK, sess.State())
}

// NextHighlight handles POST /api/v1/sessions/:id/next.
func (h *ApplicationHandler) NextHighlight(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	sess.Next()
	return utils.RespondWithJSON(c, fiber.StatusOK, sess.State())
}

// PreviousHighlight handles POST /api/v1/sessions/:id/previous.
func (h *ApplicationHandler) PreviousHighlight(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	sess.Previous()
	return utils.RespondWithJSON(c, fiber.StatusOK, sess.State())
}

// ToggleHighlight handles POST /api/v1/sessions/:id/highlights/:segmentId.
func (h *ApplicationHandler) ToggleHighlight(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	if !sess.ToggleHighlight(c.Params("segmentId")) {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Segment not found.")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, sess.State())
}

type clickRequest struct {
	SegmentID string `json:"segment_id" validate:"required"`
	Target    string `json:"target" validate:"required,oneof=timestamp row"`
}

// Click handles POST /api/v1/sessions/:id/clicks, routing a transcript
// click the way the view would: a timestamp click seeks, a row click
// toggles, never both for one click.
func (h *ApplicationHandler) Click(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req clickRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid click request.")
	}
	if err := h.Validate.Struct(req); err != nil {
		h.Logger.WithField("violations", utils.FormatValidationErrors(err)).Warn("Click request failed validation")
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid click request.")
	}

	var ok bool
	if req.Target == "timestamp" {
		ok = sess.ClickTimestamp(req.SegmentID)
	} else {
		ok = sess.ToggleHighlight(req.SegmentID)
	}
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Segment not found.")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, sess.State())
}
