package repository

import (
	"context"
	"testing"
	"time"

	"birdwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosts(t *testing.T, repo PostRepository) []*models.Post {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	posts := []*models.Post{
		{Title: "first", Body: "b", AuthorName: "TravelGuru", CreatedAt: base, LikeCount: 2},
		{Title: "second", Body: "b", AuthorName: "FoodieFanatic", CreatedAt: base.Add(time.Hour), LikeCount: 5},
		{Title: "third", Body: "b", AuthorName: "TravelGuru", CreatedAt: base.Add(2 * time.Hour), LikeCount: 2},
	}
	for _, p := range posts {
		require.NoError(t, repo.Create(ctx, p))
	}
	return posts
}

func titles(posts []*models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestPostRepository_ListByRecency(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	seedPosts(t, repo)

	posts, err := repo.List(context.Background(), models.SortRecency)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, titles(posts))
}

func TestPostRepository_ListByLikes(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	seedPosts(t, repo)

	posts, err := repo.List(context.Background(), models.SortLikes)
	require.NoError(t, err)
	// Highest like count first; the two posts tied at 2 fall back to
	// recency, newest first.
	assert.Equal(t, []string{"second", "third", "first"}, titles(posts))
}

func TestPostRepository_ListTiebreakIsStable(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// Identical timestamps and like counts: the ID decides.
	ts := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &models.Post{
			Title: title, Body: "b", AuthorName: "TechSage", CreatedAt: ts,
		}))
	}

	first, err := repo.List(ctx, models.SortRecency)
	require.NoError(t, err)
	second, err := repo.List(ctx, models.SortRecency)
	require.NoError(t, err)

	assert.Equal(t, titles(first), titles(second))
	assert.Equal(t, []string{"c", "b", "a"}, titles(first))
}

func TestPostRepository_GetByAuthor(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	seedPosts(t, repo)

	posts, err := repo.GetByAuthor(context.Background(), "TravelGuru")
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "first"}, titles(posts))
}

func TestPostRepository_GetByIDMissing(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)

	post, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestPostRepository_DeleteOwned(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	posts := seedPosts(t, repo)

	// Owner deletes their own post.
	deleted, err := repo.DeleteOwned(ctx, posts[0].ID, "TravelGuru")
	require.NoError(t, err)
	assert.True(t, deleted)

	// A repeat delete is a silent no-op.
	deleted, err = repo.DeleteOwned(ctx, posts[0].ID, "TravelGuru")
	require.NoError(t, err)
	assert.False(t, deleted)

	// Someone else's post stays.
	deleted, err = repo.DeleteOwned(ctx, posts[1].ID, "TravelGuru")
	require.NoError(t, err)
	assert.False(t, deleted)

	remaining, err := repo.List(ctx, models.SortRecency)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
