package inkclient

import "context"

type CommentInput struct {
	Text     string  `json:"text"`
	ParentID *string `json:"parentId,omitempty"`
}

func (c *Client) ListComments(ctx context.Context, postID string) ([]*ThreadedComment, error) {
	type Comments struct {
		Comments []*ThreadedComment `json:"comments"`
	}

	res, err := do[Comments](c.r(ctx).
		SetPathParam("id", postID).
		SetResult(&Comments{}).
		Get(postCommentsPath))
	return res.Comments, err
}

func (c *Client) CreateComment(ctx context.Context, postID string, input CommentInput) (Comment, error) {
	return do[Comment](c.r(ctx).
		SetPathParam("id", postID).
		SetBody(input).
		SetResult(&Comment{}).
		Post(postCommentsPath))
}

func (c *Client) UpdateComment(ctx context.Context, id, text string) (Comment, error) {
	return do[Comment](c.r(ctx).
		SetPathParam("id", id).
		SetBody(map[string]string{"text": text}).
		SetResult(&Comment{}).
		Put(commentPath))
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	_, err := do[Message](c.r(ctx).
		SetPathParam("id", id).
		SetResult(&Message{}).
		Delete(commentPath))
	return err
}
