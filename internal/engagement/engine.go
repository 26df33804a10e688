// Package engagement implements posts, comments, likes and the dashboard on top of
// the repositories. The engine keeps no state of its own.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"inkwell/internal/core"
	"inkwell/internal/threading"
)

const activityLimit = 50

var (
	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "The total number of created posts",
	})

	commentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_comments_created_total",
		Help: "The total number of created comments",
	}, []string{"kind"})

	likesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_likes_toggled_total",
		Help: "The total number of like toggles",
	}, []string{"direction"})
)

type Engine struct {
	Logger *slog.Logger

	Posts      core.PostRepository
	Comments   core.CommentRepository
	Activities core.ActivityRepository
	Events     core.EventPublisher

	// Now is the clock used for the dashboard timeline. Defaults to time.Now.
	Now func() time.Time
}

func (e *Engine) Init(_ context.Context) error {
	e.Logger = e.Logger.With("component", "engagement.Engine")
	if e.Now == nil {
		e.Now = time.Now
	}
	return nil
}

func (e *Engine) CreatePost(ctx context.Context, requesterID, title, body string) (*core.Post, error) {
	if err := authenticated(requesterID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", core.ErrValidation)
	}

	post := &core.Post{Title: title, Body: body, AuthorID: requesterID}
	if err := e.Posts.Create(ctx, post); err != nil {
		return nil, err
	}

	postsCreated.Inc()
	e.publish(ctx, core.EventPostCreated, requesterID, post, "")

	return post, nil
}

// ListPosts returns posts whose title contains search, ignoring case, newest first.
func (e *Engine) ListPosts(ctx context.Context, search string) ([]*core.Post, error) {
	posts, err := e.Posts.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	sortNewestFirst(posts)

	return posts, nil
}

func (e *Engine) GetPost(ctx context.Context, id string) (*core.PostDetails, error) {
	post, err := e.Posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := e.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &core.PostDetails{Post: post, Comments: comments}, nil
}

// UpdatePost changes the title and the body of a post. An empty title is ignored.
func (e *Engine) UpdatePost(ctx context.Context, id, requesterID string, update core.PostUpdate) (*core.Post, error) {
	post, err := e.ownedPost(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		update.Title = &title
		if title == "" {
			update.Title = nil
		}
	}

	updated, err := e.Posts.Update(ctx, post.ID, update)
	if err != nil {
		return nil, err
	}

	e.publish(ctx, core.EventPostUpdated, requesterID, updated, "")

	return updated, nil
}

// DeletePost deletes a post and then its comments. Failing to delete the comments
// does not fail the call.
func (e *Engine) DeletePost(ctx context.Context, id, requesterID string) error {
	post, err := e.ownedPost(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := e.Posts.Delete(ctx, post.ID); err != nil {
		return err
	}

	if err := e.Comments.DeleteByPost(ctx, post.ID); err != nil {
		e.Logger.Error("failed to delete comments of deleted post", "post", post.ID, "error", err)
	}

	e.publish(ctx, core.EventPostDeleted, requesterID, post, "")

	return nil
}

func (e *Engine) ToggleLike(ctx context.Context, postID, requesterID string) (core.LikeResult, error) {
	if err := authenticated(requesterID); err != nil {
		return core.LikeResult{}, err
	}

	res, err := e.Posts.ToggleLike(ctx, postID, requesterID)
	if err != nil {
		return core.LikeResult{}, err
	}

	kind, direction := core.EventPostLiked, "like"
	if !res.Liked {
		kind, direction = core.EventPostUnliked, "unlike"
	}
	likesToggled.WithLabelValues(direction).Inc()

	if post, err := e.Posts.Get(ctx, postID); err == nil {
		e.publish(ctx, kind, requesterID, post, "")
	}

	return res, nil
}

// CreateComment adds a comment to a post. A parent that does not exist or belongs
// to another post is dropped and the comment becomes top-level.
func (e *Engine) CreateComment(ctx context.Context, postID, requesterID, text string, parentID *string) (*core.Comment, error) {
	if err := authenticated(requesterID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", core.ErrValidation)
	}

	post, err := e.Posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	parentID, err = e.resolveParent(ctx, post.ID, parentID)
	if err != nil {
		return nil, err
	}

	comment := &core.Comment{
		PostID:   post.ID,
		AuthorID: requesterID,
		Text:     text,
		ParentID: parentID,
	}
	if err := e.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := e.Posts.AppendCommentID(ctx, post.ID, comment.ID); err != nil {
		e.Logger.Error("failed to link comment to post", "post", post.ID, "comment", comment.ID, "error", err)
	}

	kind := "top-level"
	if parentID != nil {
		kind = "reply"
	}
	commentsCreated.WithLabelValues(kind).Inc()

	e.publish(ctx, core.EventCommentCreated, requesterID, post, comment.ID)

	return comment, nil
}

// ListComments returns the comments of a post threaded one level deep.
func (e *Engine) ListComments(ctx context.Context, postID string) ([]*core.ThreadedComment, error) {
	comments, err := e.Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return threading.BuildShallow(comments), nil
}

func (e *Engine) UpdateComment(ctx context.Context, id, requesterID, text string) (*core.Comment, error) {
	if err := authenticated(requesterID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", core.ErrValidation)
	}

	comment, err := e.ownedComment(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	updated, err := e.Comments.UpdateText(ctx, comment.ID, text)
	if err != nil {
		return nil, err
	}

	e.publishAboutPost(ctx, core.EventCommentUpdated, requesterID, updated.PostID, updated.ID)

	return updated, nil
}

// DeleteComment deletes a comment and unlinks it from its post. Failing to unlink
// does not fail the call.
func (e *Engine) DeleteComment(ctx context.Context, id, requesterID string) error {
	comment, err := e.ownedComment(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := e.Comments.Delete(ctx, comment.ID); err != nil {
		return err
	}

	if err := e.Posts.RemoveCommentID(ctx, comment.PostID, comment.ID); err != nil {
		e.Logger.Warn("failed to unlink comment from post", "post", comment.PostID, "comment", comment.ID, "error", err)
	}

	e.publishAboutPost(ctx, core.EventCommentDeleted, requesterID, comment.PostID, comment.ID)

	return nil
}

func (e *Engine) Dashboard(ctx context.Context, requesterID string) (core.DashboardSnapshot, error) {
	if err := authenticated(requesterID); err != nil {
		return core.DashboardSnapshot{}, err
	}

	posts, err := e.Posts.ListByAuthor(ctx, requesterID)
	if err != nil {
		return core.DashboardSnapshot{}, err
	}

	commentsCount, err := e.Comments.CountByAuthor(ctx, requesterID)
	if err != nil {
		return core.DashboardSnapshot{}, err
	}

	return ComputeDashboard(posts, commentsCount, e.now()), nil
}

// RecentActivity returns the latest engagement on posts authored by the requester.
func (e *Engine) RecentActivity(ctx context.Context, requesterID string) ([]core.Activity, error) {
	if err := authenticated(requesterID); err != nil {
		return nil, err
	}

	return e.Activities.ListForPostAuthor(ctx, requesterID, activityLimit)
}

func (e *Engine) ownedPost(ctx context.Context, id, requesterID string) (*core.Post, error) {
	if err := authenticated(requesterID); err != nil {
		return nil, err
	}

	post, err := e.Posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !core.IsOwner(post, requesterID) {
		return nil, fmt.Errorf("%w: post %s belongs to another user", core.ErrForbidden, id)
	}

	return post, nil
}

func (e *Engine) ownedComment(ctx context.Context, id, requesterID string) (*core.Comment, error) {
	if err := authenticated(requesterID); err != nil {
		return nil, err
	}

	comment, err := e.Comments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !core.IsOwner(comment, requesterID) {
		return nil, fmt.Errorf("%w: comment %s belongs to another user", core.ErrForbidden, id)
	}

	return comment, nil
}

func (e *Engine) resolveParent(ctx context.Context, postID string, parentID *string) (*string, error) {
	if parentID == nil || *parentID == "" {
		return nil, nil
	}

	parent, err := e.Comments.Get(ctx, *parentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if parent.PostID != postID {
		return nil, nil
	}

	return &parent.ID, nil
}

func (e *Engine) publishAboutPost(ctx context.Context, kind core.EventKind, actorID, postID, commentID string) {
	post, err := e.Posts.Get(ctx, postID)
	if err != nil {
		e.Logger.Debug("skipping event for missing post", "kind", kind, "post", postID, "error", err)
		return
	}

	e.publish(ctx, kind, actorID, post, commentID)
}

// publish is best-effort, a failure is logged and otherwise ignored.
func (e *Engine) publish(ctx context.Context, kind core.EventKind, actorID string, post *core.Post, commentID string) {
	if e.Events == nil {
		return
	}

	event := core.Event{
		ID:           uuid.NewString(),
		Kind:         kind,
		ActorID:      actorID,
		PostID:       post.ID,
		PostAuthorID: post.AuthorID,
		CommentID:    commentID,
		At:           e.now().UTC(),
	}

	if err := e.Events.Publish(ctx, event); err != nil {
		e.Logger.Warn("failed to publish event", "kind", kind, "post", post.ID, "error", err)
	}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func authenticated(requesterID string) error {
	if requesterID == "" {
		return fmt.Errorf("%w: sign in required", core.ErrUnauthenticated)
	}
	return nil
}
