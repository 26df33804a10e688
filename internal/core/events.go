package core

import "time"

type EventKind string

const (
	EventPostCreated    EventKind = "post.created"
	EventPostUpdated    EventKind = "post.updated"
	EventPostDeleted    EventKind = "post.deleted"
	EventPostLiked      EventKind = "post.liked"
	EventPostUnliked    EventKind = "post.unliked"
	EventCommentCreated EventKind = "comment.created"
	EventCommentUpdated EventKind = "comment.updated"
	EventCommentDeleted EventKind = "comment.deleted"
)

// Event describes a completed mutation. ID is unique per event and is used to
// deduplicate deliveries.
type Event struct {
	ID           string    `json:"id"`
	Kind         EventKind `json:"kind"`
	ActorID      string    `json:"actorId"`
	PostID       string    `json:"postId"`
	PostAuthorID string    `json:"postAuthorId"`
	CommentID    string    `json:"commentId,omitempty"`
	At           time.Time `json:"at"`
}

func (e Event) Activity() Activity {
	return Activity{
		ID:           e.ID,
		Kind:         e.Kind,
		ActorID:      e.ActorID,
		PostID:       e.PostID,
		PostAuthorID: e.PostAuthorID,
		CommentID:    e.CommentID,
		CreatedAt:    e.At,
	}
}
