package core

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type DB interface {
	Model(a any) *gorm.DB
	WithContext(ctx context.Context) *gorm.DB
	EstimatedCount(tableName string) (int64, error)
	DB() (*sql.DB, error)
}

type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}

// PostRepository returns posts with Author resolved on reads. List and
// ListByAuthor return posts newest-first.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	Get(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, search string) ([]*Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Post, error)
	Update(ctx context.Context, id string, update PostUpdate) (*Post, error)
	Delete(ctx context.Context, id string) error

	AppendCommentID(ctx context.Context, postID, commentID string) error
	RemoveCommentID(ctx context.Context, postID, commentID string) error

	// ToggleLike adds userID to the post's likes if absent and removes it otherwise,
	// as a single atomic write.
	ToggleLike(ctx context.Context, postID, userID string) (LikeResult, error)
}

// CommentRepository returns comments with Author resolved. ListByPost returns
// comments in creation order.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Get(ctx context.Context, id string) (*Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
	UpdateText(ctx context.Context, id, text string) (*Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) error
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*User, error)
	GetOrCreateByName(ctx context.Context, name string) (*User, error)
	// Ensure stores a user with a known id unless the id or the name is already taken.
	Ensure(ctx context.Context, id, name string) error
}

type ActivityRepository interface {
	// Insert ignores activities whose id is already stored.
	Insert(ctx context.Context, activities ...Activity) error
	ListForPostAuthor(ctx context.Context, authorID string, limit int) ([]Activity, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
