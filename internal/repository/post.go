// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"technews/internal/cache"
	"technews/internal/models"
	"technews/internal/observability"
	"technews/internal/validation"

	"gorm.io/gorm"
)

// voteCountSelect projects posts together with their derived vote count.
// The correlated subquery keeps the aggregate in the same round trip as the
// post read so it composes with preloads; the count is never persisted.
const voteCountSelect = "post.*, (SELECT COUNT(*) FROM vote WHERE vote.post_id = post.id) AS vote_count"

// PostRepository defines persistence operations for posts and vote events.
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	ListForHome(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	UpdateTitle(ctx context.Context, id uint, title string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	Upvote(ctx context.Context, userID, postID uint) (*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withVoteCount adds the vote count projection to a post query.
func (r *postRepository) withVoteCount(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).
		Select(voteCountSelect).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		})
}

// List returns all posts with vote counts and authors, newest first.
// Posts sharing a created_at timestamp fall back to id order so the
// listing is stable.
func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := cache.Aside(ctx, cache.PostsListKey(), &posts, cache.PostsListTTL, func() error {
		if err := r.withVoteCount(r.db.WithContext(ctx)).
			Order("created_at DESC, id DESC").
			Find(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListForHome returns the homepage shape: every post with its vote count,
// author, and comments, each comment carrying its own author.
func (r *postRepository) ListForHome(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := cache.Aside(ctx, cache.HomeKey(), &posts, cache.PostsListTTL, func() error {
		if err := r.withVoteCount(r.db.WithContext(ctx)).
			Preload("Comments").
			Preload("Comments.User", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "username")
			}).
			Order("created_at DESC, id DESC").
			Find(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		if err := r.withVoteCount(r.db.WithContext(ctx)).
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("post")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.Title == "" || post.PostURL == "" || post.UserID == 0 {
		return models.NewValidationError("Title, post_url, and user_id are required")
	}
	if err := validation.ValidateURL(post.PostURL); err != nil {
		return models.NewValidationError(err.Error())
	}

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isForeignKeyViolation(err) {
			return models.NewForeignKeyError("Post references a user that does not exist")
		}
		return models.NewInternalError(err)
	}

	cache.InvalidatePostsList(ctx)
	return nil
}

// UpdateTitle changes a post's title, the only mutable post field.
func (r *postRepository) UpdateTitle(ctx context.Context, id uint, title string) (int64, error) {
	if title == "" {
		return 0, models.NewValidationError("Title is required")
	}

	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("title", title)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}

	cache.InvalidatePost(ctx, id)
	return res.RowsAffected, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return 0, models.NewForeignKeyError("Post still has votes or comments")
		}
		return 0, models.NewInternalError(res.Error)
	}
	cache.InvalidatePost(ctx, id)
	return res.RowsAffected, nil
}

// Upvote records a vote event and re-reads the post with its fresh vote
// count as one logical operation. The insert and the re-read share a
// transaction; when the insert fails the re-read never runs.
func (r *postRepository) Upvote(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if userID == 0 || postID == 0 {
		return nil, models.NewValidationError("user_id and post_id are required")
	}

	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Verify both referents up front so a bad id never inserts a row,
		// even on engines with foreign keys disabled.
		var n int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return models.NewInternalError(err)
		}
		if n == 0 {
			return models.NewForeignKeyError("Vote references a user that does not exist")
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&n).Error; err != nil {
			return models.NewInternalError(err)
		}
		if n == 0 {
			return models.NewForeignKeyError("Vote references a post that does not exist")
		}

		vote := models.Vote{UserID: userID, PostID: postID}
		if err := tx.Create(&vote).Error; err != nil {
			if isForeignKeyViolation(err) {
				return models.NewForeignKeyError("Vote references a user or post that does not exist")
			}
			return models.NewInternalError(err)
		}

		return tx.Model(&models.Post{}).
			Select(voteCountSelect).
			First(&post, postID).Error
	})
	if err != nil {
		return nil, err
	}

	observability.VotesRecorded.Inc()
	cache.InvalidatePost(ctx, postID)
	return &post, nil
}
