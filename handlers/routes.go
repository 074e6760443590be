package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts all API routes on the app.
func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "highlight tool is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")

	apiV1.Post("/transcript", h.GenerateTranscript)
	apiV1.Post("/videos/upload", h.UploadVideo)

	sessions := apiV1.Group("/sessions/:id")
	sessions.Get("", h.GetSession)
	sessions.Delete("", h.DeleteSession)
	sessions.Post("/play", h.Play)
	sessions.Post("/pause", h.Pause)
	sessions.Post("/seek", h.Seek)
	sessions.Post("/next", h.NextHighlight)
	sessions.Post("/previous", h.PreviousHighlight)
	sessions.Post("/highlights/:segmentId", h.ToggleHighlight)
	sessions.Post("/clicks", h.Click)
}
