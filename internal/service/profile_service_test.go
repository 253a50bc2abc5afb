package service

import (
	"context"
	"testing"

	"birdwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleNamedUser(t *testing.T) {
	posts := noopPostRepo()
	posts.getByAuthorFn = func(_ context.Context, author string) ([]*models.Post, error) {
		require.Equal(t, "TravelGuru", author)
		return []*models.Post{{ID: 1, Title: "mine", AuthorName: author}}, nil
	}

	likes := noopLikeRepo()
	likes.postsLikedByFn = func(_ context.Context, userID uint) ([]*models.Post, error) {
		require.EqualValues(t, 5, userID)
		return []*models.Post{{ID: 2, Title: "theirs"}}, nil
	}

	svc := NewProfileService(
		NewPostService(posts),
		NewLikeService(likes, posts, noopUserRepo(), true),
	)

	user := &models.User{ID: 5, DisplayName: namePtr("TravelGuru")}
	profile, err := svc.Assemble(context.Background(), user)
	require.NoError(t, err)

	assert.Same(t, user, profile.User)
	require.Len(t, profile.Authored, 1)
	assert.Equal(t, "mine", profile.Authored[0].Title)
	require.Len(t, profile.Liked, 1)
	assert.Equal(t, "theirs", profile.Liked[0].Title)
}

func TestAssemblePendingUserSkipsAuthored(t *testing.T) {
	posts := noopPostRepo()
	authorLookups := 0
	posts.getByAuthorFn = func(_ context.Context, _ string) ([]*models.Post, error) {
		authorLookups++
		return nil, nil
	}

	svc := NewProfileService(
		NewPostService(posts),
		NewLikeService(noopLikeRepo(), posts, noopUserRepo(), true),
	)

	profile, err := svc.Assemble(context.Background(), &models.User{ID: 5})
	require.NoError(t, err)

	assert.Zero(t, authorLookups, "a pending user has no authored posts to look up")
	assert.NotNil(t, profile.Authored)
	assert.Empty(t, profile.Authored)
	assert.NotNil(t, profile.Liked)
	assert.Empty(t, profile.Liked)
}
