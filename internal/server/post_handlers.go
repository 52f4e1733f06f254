package server

import (
	"technews/internal/middleware"
	"technews/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		PostURL string `json:"post_url"`
		UserID  uint   `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post := &models.Post{
		Title:   req.Title,
		PostURL: req.PostURL,
		UserID:  req.UserID,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return respondError(c, err)
	}

	// Reload so the response carries the author and vote count.
	post, err := s.postRepo.GetByID(c.Context(), post.ID)
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created",
		"post_id", post.ID, "user_id", post.UserID)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpvotePost handles PUT /api/posts/upvote. Any failure to record the vote
// is reported as a 400; the post is returned with its updated vote count.
func (s *Server) UpvotePost(c *fiber.Ctx) error {
	var req struct {
		UserID uint `json:"user_id"`
		PostID uint `json:"post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postRepo.Upvote(c.Context(), req.UserID, req.PostID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "vote recorded",
		"post_id", req.PostID, "user_id", req.UserID, "vote_count", post.VoteCount)

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Only the title can change.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rows, err := s.postRepo.UpdateTitle(c.Context(), id, req.Title)
	if err != nil {
		return respondError(c, err)
	}
	if rows == 0 {
		return respondError(c, models.NewNotFoundError("post"))
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	rows, err := s.postRepo.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if rows == 0 {
		return respondError(c, models.NewNotFoundError("post"))
	}

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}
