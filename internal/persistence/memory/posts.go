package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/lib/pq"
	"github.com/samber/lo"

	"inkwell/internal/core"
)

type Posts struct {
	*Store
}

func (r *Posts) Create(_ context.Context, post *core.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	stored := *post
	stored.ID = newID()
	stored.LikedBy = pq.StringArray{}
	stored.CommentIDs = pq.StringArray{}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Author = nil

	r.posts[stored.ID] = &stored
	*post = *r.clonePost(&stored)

	return nil
}

func (r *Posts) Get(_ context.Context, id string) (*core.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, notFound("post", id)
	}
	return r.clonePost(post), nil
}

func (r *Posts) List(_ context.Context, search string) ([]*core.Post, error) {
	search = strings.ToLower(search)

	return r.filter(func(post *core.Post) bool {
		return strings.Contains(strings.ToLower(post.Title), search)
	}), nil
}

func (r *Posts) ListByAuthor(_ context.Context, authorID string) ([]*core.Post, error) {
	return r.filter(func(post *core.Post) bool {
		return post.AuthorID == authorID
	}), nil
}

func (r *Posts) Update(_ context.Context, id string, update core.PostUpdate) (*core.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, notFound("post", id)
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Body != nil {
		post.Body = *update.Body
	}
	post.UpdatedAt = r.now()

	return r.clonePost(post), nil
}

func (r *Posts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return notFound("post", id)
	}
	delete(r.posts, id)

	return nil
}

func (r *Posts) AppendCommentID(_ context.Context, postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return notFound("post", postID)
	}
	post.CommentIDs = append(post.CommentIDs, commentID)

	return nil
}

func (r *Posts) RemoveCommentID(_ context.Context, postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return notFound("post", postID)
	}
	post.CommentIDs = lo.Without(post.CommentIDs, commentID)

	return nil
}

func (r *Posts) ToggleLike(_ context.Context, postID, userID string) (core.LikeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return core.LikeResult{}, notFound("post", postID)
	}

	liked := !lo.Contains(post.LikedBy, userID)
	if liked {
		post.LikedBy = append(post.LikedBy, userID)
	} else {
		post.LikedBy = lo.Without(post.LikedBy, userID)
	}
	post.UpdatedAt = r.now()

	return core.LikeResult{Liked: liked, LikeCount: len(post.LikedBy)}, nil
}

func (r *Posts) filter(keep func(*core.Post) bool) []*core.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*core.Post, 0)
	for _, post := range r.posts {
		if keep(post) {
			posts = append(posts, r.clonePost(post))
		}
	}

	slices.SortStableFunc(posts, func(a, b *core.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return posts
}
