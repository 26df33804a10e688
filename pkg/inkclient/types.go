package inkclient

import "time"

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AuthorID   string    `json:"authorId"`
	Author     *Author   `json:"author,omitempty"`
	LikedBy    []string  `json:"likedBy"`
	CommentIDs []string  `json:"commentIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	Text      string    `json:"text"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ThreadedComment struct {
	Comment

	Replies []*ThreadedComment `json:"replies"`
}

type PostDetails struct {
	Post

	Comments []*ThreadedComment `json:"comments"`
}

type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

type TimelineEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Dashboard struct {
	PostsCount    int             `json:"postsCount"`
	LikesReceived int             `json:"likesReceived"`
	CommentsCount int             `json:"commentsCount"`
	LikesTimeline []TimelineEntry `json:"likesTimeline"`
}

type Activity struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	ActorID      string    `json:"actorId"`
	PostID       string    `json:"postId"`
	PostAuthorID string    `json:"postAuthorId"`
	CommentID    string    `json:"commentId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Message struct {
	Message string `json:"message"`
}
