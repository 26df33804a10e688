package posts

import (
	"context"
	"log/slog"

	"github.com/lib/pq"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"inkwell/internal/core"
	"inkwell/internal/persistence"
)

const toggleLikeSQL = `
UPDATE posts
SET liked_by = CASE
        WHEN @user = ANY (liked_by) THEN array_remove(liked_by, @user)
        ELSE array_append(liked_by, @user)
    END,
    updated_at = now()
WHERE id = @post
RETURNING liked_by`

type Repository struct {
	Logger *slog.Logger
	DB     core.DB
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "posts.Repository")
	return nil
}

func (r *Repository) Create(ctx context.Context, post *core.Post) error {
	post.LikedBy = pq.StringArray{}
	post.CommentIDs = pq.StringArray{}

	err := r.DB.WithContext(ctx).Omit("Author").Create(post).Error
	if err != nil {
		return persistence.Translate(err, "post", post.ID)
	}

	stored, err := r.Get(ctx, post.ID)
	if err != nil {
		return err
	}
	*post = *stored

	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*core.Post, error) {
	post := &core.Post{}

	err := r.DB.WithContext(ctx).Preload("Author").First(post, "id = ?", id).Error
	if err != nil {
		return nil, persistence.Translate(err, "post", id)
	}

	return post, nil
}

func (r *Repository) List(ctx context.Context, search string) ([]*core.Post, error) {
	query := r.newest(ctx)
	if search != "" {
		query = query.Where("title ILIKE ?", persistence.ContainsPattern(search))
	}

	return r.find(query)
}

func (r *Repository) ListByAuthor(ctx context.Context, authorID string) ([]*core.Post, error) {
	return r.find(r.newest(ctx).Where("author_id = ?", authorID))
}

func (r *Repository) Update(ctx context.Context, id string, update core.PostUpdate) (*core.Post, error) {
	fields := map[string]any{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Body != nil {
		fields["body"] = *update.Body
	}

	if len(fields) > 0 {
		res := r.DB.WithContext(ctx).Model(&core.Post{}).Where("id = ?", id).Updates(fields)
		if err := r.affected(res, id); err != nil {
			return nil, err
		}
	}

	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.affected(r.DB.WithContext(ctx).Delete(&core.Post{}, "id = ?", id), id)
}

func (r *Repository) AppendCommentID(ctx context.Context, postID, commentID string) error {
	return r.updateCommentIDs(ctx, postID, gorm.Expr("array_append(comment_ids, ?)", commentID))
}

func (r *Repository) RemoveCommentID(ctx context.Context, postID, commentID string) error {
	return r.updateCommentIDs(ctx, postID, gorm.Expr("array_remove(comment_ids, ?)", commentID))
}

// ToggleLike flips the membership in a single UPDATE, so concurrent toggles by
// different users never overwrite each other.
func (r *Repository) ToggleLike(ctx context.Context, postID, userID string) (core.LikeResult, error) {
	var row struct {
		LikedBy pq.StringArray
	}

	res := r.DB.WithContext(ctx).
		Raw(toggleLikeSQL, map[string]any{"user": userID, "post": postID}).
		Scan(&row)
	if err := r.affected(res, postID); err != nil {
		return core.LikeResult{}, err
	}

	return core.LikeResult{
		Liked:     lo.Contains(row.LikedBy, userID),
		LikeCount: len(row.LikedBy),
	}, nil
}

func (r *Repository) updateCommentIDs(ctx context.Context, postID string, expr any) error {
	res := r.DB.WithContext(ctx).
		Model(&core.Post{}).
		Where("id = ?", postID).
		UpdateColumn("comment_ids", expr)

	return r.affected(res, postID)
}

func (r *Repository) newest(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Preload("Author").Order("created_at DESC, id")
}

func (r *Repository) find(query *gorm.DB) ([]*core.Post, error) {
	posts := make([]*core.Post, 0)

	if err := query.Find(&posts).Error; err != nil {
		return nil, persistence.Translate(err, "posts", "")
	}

	return posts, nil
}

func (r *Repository) affected(res *gorm.DB, id string) error {
	if res.Error != nil {
		return persistence.Translate(res.Error, "post", id)
	}
	if res.RowsAffected == 0 {
		return persistence.Translate(gorm.ErrRecordNotFound, "post", id)
	}
	return nil
}
