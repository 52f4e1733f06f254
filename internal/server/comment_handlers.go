package server

import (
	"technews/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, err := s.commentRepo.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	comment, err := s.commentRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		CommentText string `json:"comment_text"`
		UserID      uint   `json:"user_id"`
		PostID      uint   `json:"post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment := &models.Comment{
		CommentText: req.CommentText,
		UserID:      req.UserID,
		PostID:      req.PostID,
	}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	rows, err := s.commentRepo.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if rows == 0 {
		return respondError(c, models.NewNotFoundError("comment"))
	}

	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
