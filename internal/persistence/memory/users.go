package memory

import (
	"context"

	"inkwell/internal/core"
)

type Users struct {
	*Store
}

func (r *Users) Get(_ context.Context, id string) (*core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.author(id)
	if user == nil {
		return nil, notFound("user", id)
	}
	return user, nil
}

func (r *Users) GetOrCreateByName(_ context.Context, name string) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Name == name {
			return &user, nil
		}
	}

	now := r.now()
	user := core.User{ID: newID(), Name: name, CreatedAt: now, UpdatedAt: now}
	r.users[user.ID] = user

	return &user, nil
}

func (r *Users) Ensure(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; ok {
		return nil
	}
	for _, user := range r.users {
		if user.Name == name {
			return nil
		}
	}

	now := r.now()
	r.users[id] = core.User{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}

	return nil
}
