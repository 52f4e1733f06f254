package repository

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"technews/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPost(t *testing.T, repo PostRepository, userID uint, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     title,
		PostURL:   "https://example.com/" + url.PathEscape(title),
		UserID:    userID,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, users, "author", "author@example.com")

	t.Run("success", func(t *testing.T) {
		post := &models.Post{Title: "Hello", PostURL: "https://example.com/hello", UserID: author.ID}
		require.NoError(t, posts.Create(ctx, post))
		assert.NotZero(t, post.ID)
	})

	t.Run("unknown author", func(t *testing.T) {
		post := &models.Post{Title: "Orphan", PostURL: "https://example.com/orphan", UserID: 9999}
		err := posts.Create(ctx, post)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeForeignKey, appErr.Code)
	})

	tests := []struct {
		name string
		post models.Post
	}{
		{"missing title", models.Post{PostURL: "https://example.com", UserID: 1}},
		{"missing url", models.Post{Title: "t", UserID: 1}},
		{"missing author", models.Post{Title: "t", PostURL: "https://example.com"}},
		{"relative url", models.Post{Title: "t", PostURL: "/just/a/path", UserID: 1}},
		{"garbage url", models.Post{Title: "t", PostURL: "not a url", UserID: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := tt.post
			err := posts.Create(ctx, &post)
			require.Error(t, err)

			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeValidation, appErr.Code)
		})
	}
}

func TestPostRepository_List(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, users, "lister", "lister@example.com")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := createTestPost(t, posts, author.ID, "oldest", base)
	middle := createTestPost(t, posts, author.ID, "middle", base.Add(time.Hour))
	newest := createTestPost(t, posts, author.ID, "newest", base.Add(2*time.Hour))

	got, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, newest.ID, got[0].ID)
	assert.Equal(t, middle.ID, got[1].ID)
	assert.Equal(t, oldest.ID, got[2].ID)

	require.NotNil(t, got[0].User)
	assert.Equal(t, "lister", got[0].User.Username)
	assert.Empty(t, got[0].User.Password)
	assert.Equal(t, 0, got[0].VoteCount)
}

func TestPostRepository_List_TimestampTie(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, users, "tied", "tied@example.com")

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := createTestPost(t, posts, author.ID, "first", at)
	second := createTestPost(t, posts, author.ID, "second", at)

	got, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Equal timestamps fall back to id order, newest insert first.
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestPostRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, users, "getter", "getter@example.com")
	created := createTestPost(t, posts, author.ID, "single", time.Now())

	t.Run("includes author and vote count", func(t *testing.T) {
		post, err := posts.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "single", post.Title)
		assert.Equal(t, 0, post.VoteCount)
		require.NotNil(t, post.User)
		assert.Equal(t, "getter", post.User.Username)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := posts.GetByID(ctx, 9999)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.Equal(t, "No post found with this id", appErr.Message)
	})
}

func TestPostRepository_Upvote(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice", "alice@example.com")
	bob := createTestUser(t, users, "bob2", "bob2@example.com")
	post := createTestPost(t, posts, alice.ID, "votable", time.Now())

	t.Run("each vote raises the returned count", func(t *testing.T) {
		updated, err := posts.Upvote(ctx, alice.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.VoteCount)

		updated, err = posts.Upvote(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.VoteCount)
	})

	t.Run("repeat votes from one user all count", func(t *testing.T) {
		updated, err := posts.Upvote(ctx, alice.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.VoteCount)
	})

	t.Run("unknown user inserts nothing", func(t *testing.T) {
		_, err := posts.Upvote(ctx, 9999, post.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeForeignKey, appErr.Code)

		var votes int64
		require.NoError(t, db.Model(&models.Vote{}).Count(&votes).Error)
		assert.Equal(t, int64(3), votes)
	})

	t.Run("unknown post inserts nothing", func(t *testing.T) {
		_, err := posts.Upvote(ctx, alice.ID, 9999)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeForeignKey, appErr.Code)

		var votes int64
		require.NoError(t, db.Model(&models.Vote{}).Count(&votes).Error)
		assert.Equal(t, int64(3), votes)
	})

	t.Run("counts stay per post", func(t *testing.T) {
		other := createTestPost(t, posts, bob.ID, "other", time.Now())
		updated, err := posts.Upvote(ctx, alice.ID, other.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.VoteCount)

		original, err := posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, original.VoteCount)
	})
}

func TestPostRepository_UpdateTitle(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, users, "editor", "editor@example.com")
	post := createTestPost(t, posts, author.ID, "before", time.Now())

	rows, err := posts.UpdateTitle(ctx, post.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, post.PostURL, got.PostURL)

	rows, err = posts.UpdateTitle(ctx, 9999, "nobody home")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	_, err = posts.UpdateTitle(ctx, post.ID, "")
	require.Error(t, err)
}

func TestPostRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, users, "deleter", "deleter@example.com")
	post := createTestPost(t, posts, author.ID, "doomed", time.Now())

	rows, err := posts.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = posts.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestPostRepository_ListForHome(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, users, "homer", "homer@example.com")
	commenter := createTestUser(t, users, "critic", "critic@example.com")
	post := createTestPost(t, posts, author.ID, "front page", time.Now())

	require.NoError(t, posts.Create(ctx, &models.Post{
		Title: "quiet one", PostURL: "https://example.com/quiet", UserID: author.ID,
		CreatedAt: time.Now().Add(-time.Hour),
	}))

	require.NoError(t, comments.Create(ctx, &models.Comment{
		CommentText: "great find", UserID: commenter.ID, PostID: post.ID,
	}))
	_, err := posts.Upvote(ctx, commenter.ID, post.ID)
	require.NoError(t, err)

	got, err := posts.ListForHome(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	front := got[0]
	assert.Equal(t, post.ID, front.ID)
	assert.Equal(t, 1, front.VoteCount)
	require.NotNil(t, front.User)
	assert.Equal(t, "homer", front.User.Username)
	require.Len(t, front.Comments, 1)
	assert.Equal(t, "great find", front.Comments[0].CommentText)
	require.NotNil(t, front.Comments[0].User)
	assert.Equal(t, "critic", front.Comments[0].User.Username)

	assert.Empty(t, got[1].Comments)
	assert.Equal(t, 0, got[1].VoteCount)
}

// Mirrors the full life of a post: created, voted on by others, then read
// back with the count everyone expects.
func TestPostRepository_VoteCountScenario(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice-s", "alice-s@example.com")
	voters := make([]*models.User, 0, 3)
	for _, name := range []string{"v1", "v2", "v3"} {
		voters = append(voters, createTestUser(t, users, name, name+"@example.com"))
	}

	post := createTestPost(t, posts, alice.ID, "alice shares a link", time.Now())

	for i, voter := range voters {
		updated, err := posts.Upvote(ctx, voter.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, updated.VoteCount)
	}

	// The count is derived, never stored: deleting a vote row moves it.
	require.NoError(t, db.Where("user_id = ?", voters[0].ID).Delete(&models.Vote{}).Error)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.VoteCount)
}
