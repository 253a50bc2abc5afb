package service

import (
	"context"

	"birdwatch/internal/models"
)

// Profile is a user's authored and liked posts, assembled for display.
type Profile struct {
	User     *models.User   `json:"user"`
	Authored []*models.Post `json:"posts"`
	Liked    []*models.Post `json:"liked_posts"`
}

// ProfileService composes the post store and the like ledger; it holds no
// state of its own.
type ProfileService struct {
	posts *PostService
	likes *LikeService
}

// NewProfileService returns a ProfileService over the given services.
func NewProfileService(posts *PostService, likes *LikeService) *ProfileService {
	return &ProfileService{posts: posts, likes: likes}
}

// Assemble gathers the user's authored posts (most recent first) and liked
// posts (most recently liked first). A pending user has no display name and
// therefore no authored posts.
func (s *ProfileService) Assemble(ctx context.Context, user *models.User) (*Profile, error) {
	profile := &Profile{
		User:     user,
		Authored: []*models.Post{},
		Liked:    []*models.Post{},
	}

	if user.Named() {
		authored, err := s.posts.ListByAuthor(ctx, user.Name())
		if err != nil {
			return nil, err
		}
		profile.Authored = append(profile.Authored, authored...)
	}

	liked, err := s.likes.ListLikedPosts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	profile.Liked = append(profile.Liked, liked...)

	return profile, nil
}
