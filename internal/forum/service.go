// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"context"

	"campusboard/internal/apperrors"
	"campusboard/internal/models"
	"campusboard/internal/store"
)

// PostProps carries the mutable fields of a post. Nil pointers mean
// "leave unchanged" on edit; Tags follows the same convention, so an
// empty non-nil slice clears all tag links while nil leaves them alone.
type PostProps struct {
	Name       *string
	Content    *string
	CategoryID *int64
	Tags       []int64
}

// Service orchestrates post lifecycle operations across the post store,
// tag store and vote ledger, and shapes every response through the
// projector.
type Service struct {
	posts *store.PostStore
	tags  *store.TagStore
	votes *store.VoteStore
}

// NewService creates a Service over the given stores.
func NewService(posts *store.PostStore, tags *store.TagStore, votes *store.VoteStore) *Service {
	return &Service{posts: posts, tags: tags, votes: votes}
}

// GetAll returns every post projected for the given viewer.
func (s *Service) GetAll(ctx context.Context, viewer *models.User) ([]models.PostView, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, ProjectPost(&posts[i], viewer))
	}
	return views, nil
}

// GetOne returns one post projected for the given viewer.
func (s *Service) GetOne(ctx context.Context, id int64, viewer *models.User) (*models.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "post not found")
	}
	view := ProjectPost(post, viewer)
	return &view, nil
}

// Create persists a new post owned by the author, attaches its tags, and
// returns the projection with the author as viewer. All requested tag
// ids must resolve; otherwise the operation fails with UnknownTag before
// anything is written.
func (s *Service) Create(ctx context.Context, author *models.User, props PostProps) (*models.PostView, error) {
	if props.Name == nil || props.Content == nil || props.CategoryID == nil {
		return nil, apperrors.New(apperrors.CodeUnknown, "name, content and categoryId are required")
	}
	if err := s.checkTags(ctx, props.Tags); err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &models.Post{
		Name:       *props.Name,
		Content:    *props.Content,
		CategoryID: *props.CategoryID,
		AuthorID:   author.ID,
	}, props.Tags)
	if err != nil {
		return nil, err
	}

	view := ProjectPost(post, author)
	return &view, nil
}

// Edit applies a partial update. Only the author or an admin may edit.
// When Tags is non-nil the existing links are fully replaced; an empty
// list clears them, nil leaves them untouched.
func (s *Service) Edit(ctx context.Context, id int64, props PostProps, actor *models.User) (*models.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "post not found")
	}
	if !actor.Admin && actor.ID != post.AuthorID {
		return nil, apperrors.New(apperrors.CodeForbidden, "only the author or an admin may edit a post")
	}

	if props.Name != nil {
		post.Name = *props.Name
	}
	if props.Content != nil {
		post.Content = *props.Content
	}
	if props.CategoryID != nil {
		post.CategoryID = *props.CategoryID
	}

	if props.Tags != nil {
		if err := s.checkTags(ctx, props.Tags); err != nil {
			return nil, err
		}
		if err := s.posts.ReplaceTags(ctx, id, props.Tags); err != nil {
			return nil, err
		}
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.GetOne(ctx, id, actor)
}

// Delete removes a post. Only the author or an admin may delete.
func (s *Service) Delete(ctx context.Context, id int64, actor *models.User) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return apperrors.New(apperrors.CodeNotFound, "post not found")
	}
	if !actor.Admin && actor.ID != post.AuthorID {
		return apperrors.New(apperrors.CodeForbidden, "only the author or an admin may delete a post")
	}
	return s.posts.Delete(ctx, id)
}

// CastVote records the viewer's score on a post through the ledger and
// returns the fresh aggregate alongside the stored score.
func (s *Service) CastVote(ctx context.Context, viewer *models.User, postID int64, score int) (*models.VoteView, error) {
	own, aggregate, err := s.votes.Cast(ctx, viewer.ID, postID, score)
	if err != nil {
		return nil, err
	}
	return &models.VoteView{
		PostID:  postID,
		Score:   aggregate,
		MyScore: own,
	}, nil
}

// checkTags fails with UnknownTag unless every requested id resolves.
// The failure is aggregate: it does not name the offending ids.
func (s *Service) checkTags(ctx context.Context, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	count, err := s.tags.CountByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	if count != len(tagIDs) {
		return apperrors.New(apperrors.CodeUnknownTag, "one or more of the tags attached to the post do not exist")
	}
	return nil
}
