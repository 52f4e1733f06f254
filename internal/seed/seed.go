// Package seed populates the database with demo data for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"technews/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var headlineTemplates = []string{
	"%s releases %s",
	"Why %s is betting on %s",
	"Show HN: %s for %s",
	"The state of %s in %d",
	"%s raises questions about %s",
}

var topics = []string{
	"WebAssembly", "Postgres", "Rust", "Go", "Kubernetes", "SQLite",
	"RISC-V", "e-ink displays", "self-hosting", "static typing",
	"local-first software", "open hardware",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	votes, err := createVotes(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create votes: %w", err)
	}
	log.Printf("%d votes created", votes)

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("%d comments created", comments)

	log.Println("Seeding complete")
	return nil
}

// clearData removes all rows, children before parents.
func clearData(db *gorm.DB) error {
	for _, table := range []string{"vote", "comment", "post", "user"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One hash shared across demo accounts keeps seeding fast; the cost
	// factor makes per-user hashing noticeably slow at larger counts.
	hashed, err := models.HashPassword("password1234")
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(gofakeit.Username())
		users = append(users, models.User{
			Username: username,
			Email:    fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName()),
			Password: hashed,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to own posts")
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		tmpl := headlineTemplates[r.Intn(len(headlineTemplates))]
		var title string
		if strings.Contains(tmpl, "%d") {
			title = fmt.Sprintf(tmpl, topics[r.Intn(len(topics))], time.Now().Year())
		} else {
			title = fmt.Sprintf(tmpl, gofakeit.Company(), topics[r.Intn(len(topics))])
		}

		// realistic created_at spread over the last 90 days
		daysBack := r.Intn(90)
		hoursBack := r.Intn(24)
		posts = append(posts, models.Post{
			Title:     title,
			PostURL:   gofakeit.URL(),
			UserID:    users[r.Intn(len(users))].ID,
			CreatedAt: time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour),
		})
	}

	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createVotes(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	votes := make([]models.Vote, 0, len(posts)*2)
	for _, post := range posts {
		for _, user := range users {
			if r.Intn(3) == 0 {
				votes = append(votes, models.Vote{UserID: user.ID, PostID: post.ID})
			}
		}
	}
	if len(votes) == 0 {
		return 0, nil
	}
	if err := db.Create(&votes).Error; err != nil {
		return 0, err
	}
	return len(votes), nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	comments := make([]models.Comment, 0, len(posts))
	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			comments = append(comments, models.Comment{
				CommentText: gofakeit.Sentence(8 + r.Intn(10)),
				UserID:      users[r.Intn(len(users))].ID,
				PostID:      post.ID,
				CreatedAt:   post.CreatedAt.Add(time.Duration(1+r.Intn(48)) * time.Hour),
			})
		}
	}
	if len(comments) == 0 {
		return 0, nil
	}
	if err := db.Create(&comments).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}
