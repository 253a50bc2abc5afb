// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"birdwatch/internal/models"
	"birdwatch/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumLikes    int
	ShouldClean bool
}

// sampleMembers are the well-known demo accounts. They always exist after a
// seed run so the demo frontend has stable profiles to show.
var sampleMembers = []struct {
	Name  string
	Title string
	Body  string
}{
	{
		Name:  "TravelGuru",
		Title: "Exploring the hidden gems of Kyoto",
		Body:  "Spent the week wandering the backstreets of Kyoto. The small temples away from the crowds are where the city really lives.",
	},
	{
		Name:  "FoodieFanatic",
		Title: "The best ramen I have ever had",
		Body:  "A tiny shop with six seats and a line around the block. Worth every minute of the wait.",
	},
	{
		Name:  "TechSage",
		Title: "Why I still write my own static site generator",
		Body:  "Every few years I rewrite it and every time I learn something new about the tools I use daily.",
	},
	{
		Name:  "EcoWarrior",
		Title: "A month without single-use plastic",
		Body:  "Harder than expected. The grocery store is the real boss fight.",
	},
}

// Seeder creates demo users, posts, and likes.
type Seeder struct {
	db       *gorm.DB
	likeRepo repository.LikeRepository
	rng      *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:       db,
		likeRepo: repository.NewLikeRepository(db),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Ledger first, then posts, then users,
// respecting foreign-key order.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("✓ existing data cleared")
	return nil
}

// Run populates the database with the sample members plus randomly generated
// users, posts, and likes.
func (s *Seeder) Run(opts Options) error {
	log.Printf("🌱 Seeding %d users, %d posts, %d likes...", opts.NumUsers, opts.NumPosts, opts.NumLikes)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	applied, err := s.createLikes(users, posts, opts.NumLikes)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ %d likes created", applied)

	if err := s.verifyCounters(posts); err != nil {
		return fmt.Errorf("like counter verification failed: %w", err)
	}
	log.Println("✓ like counters verified against the ledger")

	log.Println("🌱 Seeding complete")
	return nil
}

// createUsers creates the sample members first, then random registered users
// up to n, then one pending user who never finished registration.
func (s *Seeder) createUsers(n int) ([]*models.User, error) {
	var users []*models.User

	for _, m := range sampleMembers {
		name := m.Name
		user := &models.User{
			ExternalID:  "seed-" + strings.ToLower(name),
			DisplayName: &name,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	for i := len(users); i < n; i++ {
		word := gofakeit.Word()
		name := fmt.Sprintf("%s%s%d",
			strings.ToUpper(word[:1]), word[1:], gofakeit.Number(100, 999))
		user := &models.User{
			ExternalID:  gofakeit.UUID(),
			DisplayName: &name,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	// One pending account exercises the half-registered state.
	pending := &models.User{ExternalID: gofakeit.UUID()}
	if err := s.db.Create(pending).Error; err != nil {
		return nil, err
	}
	users = append(users, pending)

	return users, nil
}

// createPosts gives each sample member their canonical post, then fills the
// rest with generated content spread over the past 90 days.
func (s *Seeder) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	var posts []*models.Post

	for i, m := range sampleMembers {
		post := &models.Post{
			Title:      m.Title,
			Body:       m.Body,
			AuthorName: m.Name,
			CreatedAt:  time.Now().Add(-time.Duration(i+1) * 24 * time.Hour),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	named := make([]*models.User, 0, len(users))
	for _, u := range users {
		if u.Named() {
			named = append(named, u)
		}
	}

	for i := len(posts); i < n; i++ {
		author := named[s.rng.Intn(len(named))]
		post := &models.Post{
			Title:      gofakeit.Sentence(5),
			Body:       gofakeit.Paragraph(1, 3, 5, "\n"),
			AuthorName: author.Name(),
			CreatedAt: time.Now().
				Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour).
				Add(-time.Duration(s.rng.Intn(60)) * time.Minute),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// createLikes sprinkles likes over random (user, post) pairs through the same
// transactional repository path the API uses, keeping the like_count column in
// step with the ledger. Duplicate pairs are absorbed, so the returned count can
// be below the requested one.
func (s *Seeder) createLikes(users []*models.User, posts []*models.Post, n int) (int, error) {
	ctx := context.Background()
	applied := 0

	for i := 0; i < n; i++ {
		user := users[s.rng.Intn(len(users))]
		post := posts[s.rng.Intn(len(posts))]

		ok, err := s.likeRepo.Create(ctx, user.ID, post.ID)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}

	return applied, nil
}

// verifyCounters cross-checks each post's cached like_count against the
// ledger. A mismatch means the seed run left the data inconsistent.
func (s *Seeder) verifyCounters(posts []*models.Post) error {
	ctx := context.Background()
	for _, p := range posts {
		ledger, err := s.likeRepo.CountForPost(ctx, p.ID)
		if err != nil {
			return err
		}

		var current models.Post
		if err := s.db.First(&current, p.ID).Error; err != nil {
			return err
		}
		if int64(current.LikeCount) != ledger {
			return fmt.Errorf("post %d: like_count %d but %d ledger rows",
				p.ID, current.LikeCount, ledger)
		}
	}
	return nil
}
