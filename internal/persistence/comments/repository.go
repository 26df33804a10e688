package comments

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"inkwell/internal/core"
	"inkwell/internal/persistence"
)

type Repository struct {
	Logger *slog.Logger
	DB     core.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "comments.Repository")
	return nil
}

func (r *Repository) Create(ctx context.Context, comment *core.Comment) error {
	err := r.DB.WithContext(ctx).Omit("Author").Create(comment).Error
	if err != nil {
		return persistence.Translate(err, "comment", comment.ID)
	}

	stored, err := r.Get(ctx, comment.ID)
	if err != nil {
		return err
	}
	*comment = *stored

	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*core.Comment, error) {
	comment := &core.Comment{}

	err := r.DB.WithContext(ctx).Preload("Author").First(comment, "id = ?", id).Error
	if err != nil {
		return nil, persistence.Translate(err, "comment", id)
	}

	return comment, nil
}

func (r *Repository) ListByPost(ctx context.Context, postID string) ([]*core.Comment, error) {
	comments := make([]*core.Comment, 0)

	err := r.DB.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at, id").
		Find(&comments).Error
	if err != nil {
		return nil, persistence.Translate(err, "comments of post", postID)
	}

	return comments, nil
}

func (r *Repository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int64

	err := r.DB.WithContext(ctx).Model(&core.Comment{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, persistence.Translate(err, "comments of user", authorID)
	}

	return int(count), nil
}

func (r *Repository) UpdateText(ctx context.Context, id, text string) (*core.Comment, error) {
	res := r.DB.WithContext(ctx).Model(&core.Comment{}).Where("id = ?", id).Update("text", text)
	if err := affected(res, id); err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return affected(r.DB.WithContext(ctx).Delete(&core.Comment{}, "id = ?", id), id)
}

func (r *Repository) DeleteByPost(ctx context.Context, postID string) error {
	err := r.DB.WithContext(ctx).Delete(&core.Comment{}, "post_id = ?", postID).Error
	return persistence.Translate(err, "comments of post", postID)
}

func affected(res *gorm.DB, id string) error {
	if res.Error != nil {
		return persistence.Translate(res.Error, "comment", id)
	}
	if res.RowsAffected == 0 {
		return persistence.Translate(gorm.ErrRecordNotFound, "comment", id)
	}
	return nil
}
