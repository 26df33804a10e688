package activities

import (
	"context"

	"gorm.io/gorm/clause"

	"inkwell/internal/core"
	"inkwell/internal/persistence"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Insert(ctx context.Context, activities ...core.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&activities).Error

	return persistence.Translate(err, "activities", "")
}

func (r *Repository) ListForPostAuthor(ctx context.Context, authorID string, limit int) ([]core.Activity, error) {
	activities := make([]core.Activity, 0)

	err := r.DB.WithContext(ctx).
		Where("post_author_id = ?", authorID).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, persistence.Translate(err, "activities of user", authorID)
	}

	return activities, nil
}
