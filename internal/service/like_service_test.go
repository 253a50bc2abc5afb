package service

import (
	"context"
	"testing"

	"birdwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn       func(context.Context, uint, uint) (bool, error)
	existsFn       func(context.Context, uint, uint) (bool, error)
	postsLikedByFn func(context.Context, uint) ([]*models.Post, error)
	countForPostFn func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Create(ctx context.Context, userID, postID uint) (bool, error) {
	return s.createFn(ctx, userID, postID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	return s.existsFn(ctx, userID, postID)
}
func (s *likeRepoStub) PostsLikedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postsLikedByFn(ctx, userID)
}
func (s *likeRepoStub) CountForPost(ctx context.Context, postID uint) (int64, error) {
	return s.countForPostFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		postsLikedByFn: func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		countForPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByExternalIDFn func(context.Context, string) (*models.User, error)
	getByNameFn       func(context.Context, string) (*models.User, error)
	createFn          func(context.Context, *models.User) error
	setDisplayNameFn  func(context.Context, uint, string) (*models.User, error)
	updateFn          func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.getByExternalIDFn(ctx, externalID)
}
func (s *userRepoStub) GetByDisplayName(ctx context.Context, name string) (*models.User, error) {
	return s.getByNameFn(ctx, name)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) SetDisplayName(ctx context.Context, id uint, name string) (*models.User, error) {
	return s.setDisplayNameFn(ctx, id, name)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:         func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByExternalIDFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByNameFn:       func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:          func(_ context.Context, _ *models.User) error { return nil },
		setDisplayNameFn:  func(_ context.Context, _ uint, _ string) (*models.User, error) { return &models.User{}, nil },
		updateFn:          func(_ context.Context, _ *models.User) error { return nil },
	}
}

func namePtr(s string) *string { return &s }

func TestLikeMissingPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil }

	svc := NewLikeService(noopLikeRepo(), posts, noopUserRepo(), true)

	_, err := svc.Like(context.Background(), 1, 99)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestLikeApplied(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorName: "FoodieFanatic"}, nil
	}

	likes := noopLikeRepo()
	var gotUser, gotPost uint
	likes.createFn = func(_ context.Context, userID, postID uint) (bool, error) {
		gotUser, gotPost = userID, postID
		return true, nil
	}

	svc := NewLikeService(likes, posts, noopUserRepo(), true)

	result, err := svc.Like(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.EqualValues(t, 3, gotUser)
	assert.EqualValues(t, 7, gotPost)
}

func TestLikeDuplicateIsSoft(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorName: "FoodieFanatic"}, nil
	}

	likes := noopLikeRepo()
	likes.createFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }

	svc := NewLikeService(likes, posts, noopUserRepo(), true)

	result, err := svc.Like(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.False(t, result.Applied)
}

func TestLikeSelfDeclinedByPolicy(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorName: "TravelGuru"}, nil
	}

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, DisplayName: namePtr("TravelGuru")}, nil
	}

	likes := noopLikeRepo()
	created := false
	likes.createFn = func(_ context.Context, _, _ uint) (bool, error) {
		created = true
		return true, nil
	}

	svc := NewLikeService(likes, posts, users, false)

	result, err := svc.Like(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.False(t, created, "a declined self-like must not touch the ledger")
}

func TestLikeSelfAllowedByDefault(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorName: "TravelGuru"}, nil
	}

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, DisplayName: namePtr("TravelGuru")}, nil
	}

	svc := NewLikeService(noopLikeRepo(), posts, users, true)

	result, err := svc.Like(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.True(t, result.Applied)
}

func TestLikeOtherUserUnderStrictPolicy(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorName: "FoodieFanatic"}, nil
	}

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, DisplayName: namePtr("TravelGuru")}, nil
	}

	svc := NewLikeService(noopLikeRepo(), posts, users, false)

	result, err := svc.Like(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.True(t, result.Applied)
}
