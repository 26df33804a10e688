package memory

import (
	"context"
	"slices"

	"inkwell/internal/core"
)

type Comments struct {
	*Store
}

func (r *Comments) Create(_ context.Context, comment *core.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	stored := *comment
	stored.ID = newID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Author = nil

	r.comments[stored.ID] = &stored
	r.commentOrder = append(r.commentOrder, stored.ID)
	*comment = *r.cloneComment(&stored)

	return nil
}

func (r *Comments) Get(_ context.Context, id string) (*core.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, notFound("comment", id)
	}
	return r.cloneComment(comment), nil
}

func (r *Comments) ListByPost(_ context.Context, postID string) ([]*core.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]*core.Comment, 0)
	for _, id := range r.commentOrder {
		if comment := r.comments[id]; comment.PostID == postID {
			comments = append(comments, r.cloneComment(comment))
		}
	}

	return comments, nil
}

func (r *Comments) CountByAuthor(_ context.Context, authorID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, comment := range r.comments {
		if comment.AuthorID == authorID {
			count++
		}
	}

	return count, nil
}

func (r *Comments) UpdateText(_ context.Context, id, text string) (*core.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, notFound("comment", id)
	}
	comment.Text = text
	comment.UpdatedAt = r.now()

	return r.cloneComment(comment), nil
}

func (r *Comments) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return notFound("comment", id)
	}
	r.remove(func(c *core.Comment) bool { return c.ID == id })

	return nil
}

func (r *Comments) DeleteByPost(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.remove(func(c *core.Comment) bool { return c.PostID == postID })

	return nil
}

// remove must be called with mu held.
func (r *Comments) remove(match func(*core.Comment) bool) {
	r.commentOrder = slices.DeleteFunc(r.commentOrder, func(id string) bool {
		if match(r.comments[id]) {
			delete(r.comments, id)
			return true
		}
		return false
	})
}
