package server

import (
	"bytes"
	"embed"
	"html/template"

	"technews/internal/models"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var homepageTmpl = template.Must(template.ParseFS(templateFS,
	"templates/layout.html", "templates/homepage.html"))

type homepageData struct {
	Posts []models.Post
}

// Homepage handles GET /, rendering every post with its vote count,
// author, and comment thread.
func (s *Server) Homepage(c *fiber.Ctx) error {
	posts, err := s.postRepo.ListForHome(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := homepageTmpl.ExecuteTemplate(&buf, "base", homepageData{Posts: posts}); err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
