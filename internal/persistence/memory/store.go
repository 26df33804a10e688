// Package memory is a process-local implementation of the repositories. It backs
// `serve --store memory` and the tests.
package memory

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/core"
)

type Store struct {
	// Now returns the timestamps stored on writes. Defaults to time.Now.
	Now func() time.Time

	mu         sync.RWMutex
	users      map[string]core.User
	posts      map[string]*core.Post
	comments   map[string]*core.Comment
	activities map[string]core.Activity

	// creation order of comment ids
	commentOrder []string
}

func New() *Store {
	return &Store{
		Now:        time.Now,
		users:      map[string]core.User{},
		posts:      map[string]*core.Post{},
		comments:   map[string]*core.Comment{},
		activities: map[string]core.Activity{},
	}
}

func (s *Store) Posts() *Posts {
	return &Posts{s}
}

func (s *Store) Comments() *Comments {
	return &Comments{s}
}

func (s *Store) Users() *Users {
	return &Users{s}
}

func (s *Store) Activities() *Activities {
	return &Activities{s}
}

// AddUser stores a user with a known id.
func (s *Store) AddUser(user core.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func newID() string {
	return uuid.NewString()
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", core.ErrNotFound, what, id)
}

// author must be called with mu held.
func (s *Store) author(id string) *core.User {
	user, ok := s.users[id]
	if !ok {
		return nil
	}
	return &user
}

// clonePost must be called with mu held.
func (s *Store) clonePost(p *core.Post) *core.Post {
	c := *p
	c.LikedBy = slices.Clone(p.LikedBy)
	c.CommentIDs = slices.Clone(p.CommentIDs)
	c.Author = s.author(p.AuthorID)
	return &c
}

// cloneComment must be called with mu held.
func (s *Store) cloneComment(cm *core.Comment) *core.Comment {
	c := *cm
	if cm.ParentID != nil {
		parentID := *cm.ParentID
		c.ParentID = &parentID
	}
	c.Author = s.author(cm.AuthorID)
	return &c
}
