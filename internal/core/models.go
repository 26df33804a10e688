package core

import (
	"time"

	"github.com/lib/pq"
)

// User is the minimal identity record used to resolve author names.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Post is a blog post. LikedBy holds unique user ids, CommentIDs is a denormalized
// list of comment ids in creation order and is never used as a source of truth.
type Post struct {
	ID         string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title      string         `json:"title" gorm:"not null"`
	Body       string         `json:"body"`
	AuthorID   string         `json:"authorId" gorm:"type:uuid;not null"`
	LikedBy    pq.StringArray `json:"likedBy" gorm:"type:text[];not null;default:'{}'"`
	CommentIDs pq.StringArray `json:"commentIds" gorm:"column:comment_ids;type:text[];not null;default:'{}'"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) OwnerID() string {
	return p.AuthorID
}

// PostUpdate carries optional post fields. Nil or empty fields are left untouched.
type PostUpdate struct {
	Title *string
	Body  *string
}

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"type:uuid;not null"`
	AuthorID  string    `json:"authorId" gorm:"type:uuid;not null"`
	Text      string    `json:"text" gorm:"not null"`
	ParentID  *string   `json:"parentId" gorm:"type:uuid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) OwnerID() string {
	return c.AuthorID
}

// ThreadedComment is a comment with the comments that reference it as parent.
type ThreadedComment struct {
	*Comment

	Replies []*ThreadedComment `json:"replies"`
}

// LikeResult is the state of a post's likes after a toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// PostDetails is a post together with its threaded comments.
type PostDetails struct {
	*Post

	Comments []*ThreadedComment `json:"comments"`
}

type TimelineEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardSnapshot is derived on request and never persisted.
//
// LikesTimeline counts posts created per day, not likes. The name is kept for
// compatibility with existing clients.
type DashboardSnapshot struct {
	PostsCount    int             `json:"postsCount"`
	LikesReceived int             `json:"likesReceived"`
	CommentsCount int             `json:"commentsCount"`
	LikesTimeline []TimelineEntry `json:"likesTimeline"`
}

// Activity is a persisted engagement event about a post.
type Activity struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Kind         EventKind `json:"kind" gorm:"not null"`
	ActorID      string    `json:"actorId" gorm:"not null"`
	PostID       string    `json:"postId" gorm:"not null"`
	PostAuthorID string    `json:"postAuthorId" gorm:"not null"`
	CommentID    string    `json:"commentId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Activity) TableName() string {
	return "activity_logs"
}
