package inkclient

import "context"

const (
	postsPath   = "/api/posts"
	postPath    = "/api/posts/{id}"
	likePath    = "/api/posts/{id}/like"
	commentPath = "/api/comments/{id}"

	postCommentsPath = "/api/posts/{id}/comments"
	dashboardPath    = "/api/dashboard"
	activityPath     = "/api/activity"
)

type PostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PostUpdate fields left nil are not sent.
type PostUpdate struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

func (c *Client) ListPosts(ctx context.Context, search string) ([]*Post, error) {
	type Posts struct {
		Posts []*Post `json:"posts"`
	}

	req := c.r(ctx).SetResult(&Posts{})
	if search != "" {
		req.SetQueryParam("search", search)
	}

	posts, err := do[Posts](req.Get(postsPath))
	return posts.Posts, err
}

func (c *Client) CreatePost(ctx context.Context, input PostInput) (Post, error) {
	return do[Post](c.r(ctx).
		SetBody(input).
		SetResult(&Post{}).
		Post(postsPath))
}

func (c *Client) GetPost(ctx context.Context, id string) (PostDetails, error) {
	return do[PostDetails](c.r(ctx).
		SetPathParam("id", id).
		SetResult(&PostDetails{}).
		Get(postPath))
}

func (c *Client) UpdatePost(ctx context.Context, id string, update PostUpdate) (Post, error) {
	return do[Post](c.r(ctx).
		SetPathParam("id", id).
		SetBody(update).
		SetResult(&Post{}).
		Put(postPath))
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := do[Message](c.r(ctx).
		SetPathParam("id", id).
		SetResult(&Message{}).
		Delete(postPath))
	return err
}

func (c *Client) ToggleLike(ctx context.Context, id string) (LikeResult, error) {
	return do[LikeResult](c.r(ctx).
		SetPathParam("id", id).
		SetResult(&LikeResult{}).
		Put(likePath))
}

func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	return do[Dashboard](c.r(ctx).
		SetResult(&Dashboard{}).
		Get(dashboardPath))
}

func (c *Client) Activity(ctx context.Context) ([]Activity, error) {
	type Activities struct {
		Activity []Activity `json:"activity"`
	}

	res, err := do[Activities](c.r(ctx).
		SetResult(&Activities{}).
		Get(activityPath))
	return res.Activity, err
}
