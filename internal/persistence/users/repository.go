package users

import (
	"context"

	"gorm.io/gorm/clause"

	"inkwell/internal/core"
	"inkwell/internal/persistence"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Get(ctx context.Context, id string) (*core.User, error) {
	user := &core.User{}

	err := r.DB.WithContext(ctx).First(user, "id = ?", id).Error
	if err != nil {
		return nil, persistence.Translate(err, "user", id)
	}

	return user, nil
}

func (r *Repository) GetOrCreateByName(ctx context.Context, name string) (*core.User, error) {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&core.User{Name: name}).Error
	if err != nil {
		return nil, persistence.Translate(err, "user", name)
	}

	user := &core.User{}
	err = r.DB.WithContext(ctx).First(user, "name = ?", name).Error
	if err != nil {
		return nil, persistence.Translate(err, "user", name)
	}

	return user, nil
}

func (r *Repository) Ensure(ctx context.Context, id, name string) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&core.User{ID: id, Name: name}).Error
	if err != nil {
		return persistence.Translate(err, "user", id)
	}

	return nil
}
