package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// HandlePage serves an embedded HTML page with title/version substituted.
func HandlePage(template []byte, title, version string) fiber.Handler {
	html := RenderPageHTML(string(template), title, version)
	return func(c fiber.Ctx) error {
		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.SendString(html)
	}
}

// RenderPageHTML replaces template variables in embedded HTML.
func RenderPageHTML(templateHTML, title, version string) string {
	html := strings.ReplaceAll(templateHTML, "{{.Title}}", title)
	return strings.ReplaceAll(html, "{{.Version}}", version)
}
