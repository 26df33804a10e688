// Package db registers the repositories of the configured store.
package db

import (
	"github.com/zhulik/pal"

	"inkwell/internal/config"
	"inkwell/internal/core"
	"inkwell/internal/persistence"
	"inkwell/internal/persistence/activities"
	"inkwell/internal/persistence/comments"
	"inkwell/internal/persistence/memory"
	"inkwell/internal/persistence/posts"
	"inkwell/internal/persistence/users"
)

func Provide(store string) pal.ServiceDef {
	if store == config.StoreMemory {
		return ProvideMemory(memory.New())
	}
	return ProvidePostgres()
}

func ProvidePostgres() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.DB](&persistence.DB{}),
		pal.Provide[core.PostRepository](&posts.Repository{}),
		pal.Provide[core.CommentRepository](&comments.Repository{}),
		pal.Provide[core.UserRepository](&users.Repository{}),
		pal.Provide[core.ActivityRepository](&activities.Repository{}),
	)
}

// ProvideMemory registers repositories backed by store. Data lives as long as the
// process.
func ProvideMemory(store *memory.Store) pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.PostRepository](store.Posts()),
		pal.Provide[core.CommentRepository](store.Comments()),
		pal.Provide[core.UserRepository](store.Users()),
		pal.Provide[core.ActivityRepository](store.Activities()),
	)
}

func ProvideMigrator() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.DB](&persistence.DB{}),
		pal.Provide[core.Migrator](&persistence.Migrator{}),
	)
}
