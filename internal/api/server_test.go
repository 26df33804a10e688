package api_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"inkwell/internal/api"
	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/core"
	"inkwell/internal/engagement"
	"inkwell/internal/persistence/memory"
	"inkwell/pkg/inkclient"
)

const secret = "test-secret"

type testAPI struct {
	url    string
	client *inkclient.Client
	tokens *auth.Tokens
}

func (a testAPI) as(t *testing.T, userID string) *inkclient.Client {
	t.Helper()

	token, err := a.tokens.Issue(userID, userID, time.Hour)
	require.NoError(t, err)

	return a.client.WithToken(token)
}

func newTestAPI(t *testing.T, posts core.PostRepository) testAPI {
	t.Helper()

	store := memory.New()
	store.AddUser(core.User{ID: "alice", Name: "Alice"})
	store.AddUser(core.User{ID: "bob", Name: "Bob"})
	store.AddUser(core.User{ID: "carol", Name: "Carol"})

	if posts == nil {
		posts = store.Posts()
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	engine := &engagement.Engine{
		Logger:     logger,
		Posts:      posts,
		Comments:   store.Comments(),
		Activities: store.Activities(),
		Events: eventRecorder(func(ctx context.Context, event core.Event) error {
			return store.Activities().Insert(ctx, event.Activity())
		}),
	}
	require.NoError(t, engine.Init(t.Context()))

	backend := &api.Backend{Logger: logger, Engine: engine}
	require.NoError(t, backend.Init(t.Context()))

	tokens := auth.NewTokens(secret)

	server := &api.Server{
		Logger:  logger,
		Config:  &config.Config{ListenAddr: ":0"},
		Backend: backend,
		Tokens:  tokens,
		Users:   store.Users(),
	}
	require.NoError(t, server.Init(t.Context()))

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	client := inkclient.NewClient(ts.URL, nil)
	t.Cleanup(func() { client.Close() })

	return testAPI{url: ts.URL, client: client, tokens: tokens}
}

type eventRecorder func(context.Context, core.Event) error

func (f eventRecorder) Publish(ctx context.Context, event core.Event) error {
	return f(ctx, event)
}

type failingPosts struct {
	core.PostRepository
}

func (failingPosts) List(context.Context, string) ([]*core.Post, error) {
	return nil, fmt.Errorf("%w: list posts: connection refused", core.ErrStoreFailure)
}

func apiError(t *testing.T, err error) *inkclient.APIError {
	t.Helper()

	var apiErr *inkclient.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr
}

// rawError performs a request and returns the status and the parsed error body.
func rawError(t *testing.T, method, url, token, body string) (int, *gabs.Container) {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	parsed, err := gabs.ParseJSON(data)
	require.NoError(t, err, string(data))

	return res.StatusCode, parsed
}

func TestServer_Flow(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t, nil)
	alice, bob, carol := a.as(t, "alice"), a.as(t, "bob"), a.as(t, "carol")
	ctx := t.Context()

	post, err := alice.CreatePost(ctx, inkclient.PostInput{Title: "T", Body: "B"})
	require.NoError(t, err)
	require.Equal(t, "alice", post.AuthorID)
	require.Equal(t, "Alice", post.Author.Name)

	hello, err := bob.CreateComment(ctx, post.ID, inkclient.CommentInput{Text: "hello"})
	require.NoError(t, err)

	reply, err := carol.CreateComment(ctx, post.ID, inkclient.CommentInput{Text: "hi back", ParentID: &hello.ID})
	require.NoError(t, err)

	details, err := a.client.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", details.Author.Name)
	require.Len(t, details.Comments, 1)
	require.Equal(t, "hello", details.Comments[0].Text)
	require.Equal(t, "Bob", details.Comments[0].Author.Name)
	require.Len(t, details.Comments[0].Replies, 1)
	require.Equal(t, reply.ID, details.Comments[0].Replies[0].ID)

	comments, err := a.client.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	like, err := alice.ToggleLike(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, inkclient.LikeResult{Liked: true, LikeCount: 1}, like)

	like, err = alice.ToggleLike(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, inkclient.LikeResult{Liked: false, LikeCount: 0}, like)

	_, err = bob.ToggleLike(ctx, post.ID)
	require.NoError(t, err)

	dashboard, err := alice.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, dashboard.PostsCount)
	require.Equal(t, 1, dashboard.LikesReceived)
	require.Zero(t, dashboard.CommentsCount)
	require.Len(t, dashboard.LikesTimeline, 7)
	require.Equal(t, 1, dashboard.LikesTimeline[6].Count)

	activity, err := alice.Activity(ctx)
	require.NoError(t, err)
	require.Len(t, activity, 6)

	updated, err := bob.UpdateComment(ctx, hello.ID, "hello!")
	require.NoError(t, err)
	require.Equal(t, "hello!", updated.Text)

	require.NoError(t, carol.DeleteComment(ctx, reply.ID))

	comments, err = a.client.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Empty(t, comments[0].Replies)

	edited, err := alice.UpdatePost(ctx, post.ID, inkclient.PostUpdate{Title: lo.ToPtr("New title")})
	require.NoError(t, err)
	require.Equal(t, "New title", edited.Title)
	require.Equal(t, "B", edited.Body)

	posts, err := a.client.ListPosts(ctx, "new")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	posts, err = a.client.ListPosts(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, posts)

	require.NoError(t, alice.DeletePost(ctx, post.ID))

	_, err = a.client.GetPost(ctx, post.ID)
	require.Equal(t, http.StatusNotFound, apiError(t, err).Status)
}

func TestServer_Errors(t *testing.T) {
	t.Parallel()

	t.Run("anonymous mutation", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, nil)

		_, err := a.client.CreatePost(t.Context(), inkclient.PostInput{Title: "T"})
		apiErr := apiError(t, err)
		require.Equal(t, http.StatusUnauthorized, apiErr.Status)
		require.Equal(t, "Unauthenticated", apiErr.Kind)

		_, err = a.client.Dashboard(t.Context())
		require.Equal(t, http.StatusUnauthorized, apiError(t, err).Status)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, nil)

		status, body := rawError(t, http.MethodGet, a.url+"/api/dashboard", "garbage", "")
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "Unauthenticated", body.Path("error.kind").Data())

		forged, err := auth.NewTokens("other").Issue("alice", "Alice", time.Hour)
		require.NoError(t, err)

		status, _ = rawError(t, http.MethodGet, a.url+"/api/dashboard", forged, "")
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("another user's post", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, nil)
		post, err := a.as(t, "alice").CreatePost(t.Context(), inkclient.PostInput{Title: "T", Body: "B"})
		require.NoError(t, err)

		bob := a.as(t, "bob")

		err = bob.DeletePost(t.Context(), post.ID)
		apiErr := apiError(t, err)
		require.Equal(t, http.StatusForbidden, apiErr.Status)
		require.Equal(t, "Forbidden", apiErr.Kind)

		_, err = bob.UpdatePost(t.Context(), post.ID, inkclient.PostUpdate{Title: lo.ToPtr("X")})
		require.Equal(t, http.StatusForbidden, apiError(t, err).Status)

		stored, err := a.client.GetPost(t.Context(), post.ID)
		require.NoError(t, err)
		require.Equal(t, "T", stored.Title)
		require.Equal(t, "B", stored.Body)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, nil)
		alice := a.as(t, "alice")

		_, err := alice.CreatePost(t.Context(), inkclient.PostInput{Title: ""})
		apiErr := apiError(t, err)
		require.Equal(t, http.StatusBadRequest, apiErr.Status)
		require.Equal(t, "ValidationError", apiErr.Kind)

		_, err = alice.CreatePost(t.Context(), inkclient.PostInput{Title: "   "})
		require.Equal(t, "ValidationError", apiError(t, err).Kind)

		post, err := alice.CreatePost(t.Context(), inkclient.PostInput{Title: "T"})
		require.NoError(t, err)

		_, err = alice.CreateComment(t.Context(), post.ID, inkclient.CommentInput{Text: " "})
		require.Equal(t, "ValidationError", apiError(t, err).Kind)

		token, err := a.tokens.Issue("alice", "Alice", time.Hour)
		require.NoError(t, err)

		status, body := rawError(t, http.MethodPost, a.url+"/api/posts", token, `{"body": "no title"}`)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "ValidationError", body.Path("error.kind").Data())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, nil)

		status, body := rawError(t, http.MethodGet, a.url+"/api/posts/missing", "", "")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "NotFound", body.Path("error.kind").Data())
		require.Contains(t, body.Path("error.message").Data(), "missing")

		_, err := a.as(t, "bob").CreateComment(t.Context(), "missing", inkclient.CommentInput{Text: "hi"})
		require.Equal(t, http.StatusNotFound, apiError(t, err).Status)

		status, _ = rawError(t, http.MethodGet, a.url+"/api/nothing-here", "", "")
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("store failure hides details", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, failingPosts{})

		status, body := rawError(t, http.MethodGet, a.url+"/api/posts", "", "")
		require.Equal(t, http.StatusInternalServerError, status)
		require.Equal(t, "StoreFailure", body.Path("error.kind").Data())
		require.Equal(t, "internal server error", body.Path("error.message").Data())
	})
}

func TestServer_Requesters(t *testing.T) {
	t.Parallel()

	t.Run("authors resolve for users issued by another store", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, nil)

		dave, err := memory.New().Users().GetOrCreateByName(t.Context(), "dave")
		require.NoError(t, err)

		token, err := a.tokens.Issue(dave.ID, dave.Name, time.Hour)
		require.NoError(t, err)
		client := a.client.WithToken(token)

		post, err := client.CreatePost(t.Context(), inkclient.PostInput{Title: "T"})
		require.NoError(t, err)
		require.Equal(t, "dave", post.Author.Name)

		_, err = client.CreateComment(t.Context(), post.ID, inkclient.CommentInput{Text: "first"})
		require.NoError(t, err)

		posts, err := a.client.ListPosts(t.Context(), "")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		require.NotNil(t, posts[0].Author)
		require.Equal(t, dave.ID, posts[0].Author.ID)
		require.Equal(t, "dave", posts[0].Author.Name)

		comments, err := a.client.ListComments(t.Context(), post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		require.Equal(t, "dave", comments[0].Author.Name)
	})

	t.Run("known users keep their name", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, nil)

		token, err := a.tokens.Issue("alice", "someone else", time.Hour)
		require.NoError(t, err)

		post, err := a.client.WithToken(token).CreatePost(t.Context(), inkclient.PostInput{Title: "T"})
		require.NoError(t, err)
		require.Equal(t, "Alice", post.Author.Name)
	})

	t.Run("bearer scheme is case-insensitive", func(t *testing.T) {
		t.Parallel()

		a := newTestAPI(t, nil)

		token, err := a.tokens.Issue("alice", "Alice", time.Hour)
		require.NoError(t, err)

		for _, header := range []string{"bearer " + token, "BEARER " + token, "Bearer  " + token} {
			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, a.url+"/api/dashboard", nil)
			require.NoError(t, err)
			req.Header.Set("Authorization", header)

			res, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			res.Body.Close()

			require.Equal(t, http.StatusOK, res.StatusCode, header)
		}

		status, _ := rawError(t, http.MethodGet, a.url+"/api/dashboard", "", "")
		require.Equal(t, http.StatusUnauthorized, status)

		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, a.url+"/api/dashboard", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Basic "+token)

		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestServer_BodyLimit(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t, nil)

	token, err := a.tokens.Issue("alice", "Alice", time.Hour)
	require.NoError(t, err)

	body := fmt.Sprintf(`{"title": "T", "body": %q}`, strings.Repeat("a", 1<<20))

	status, parsed := rawError(t, http.MethodPost, a.url+"/api/posts", token, body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "ValidationError", parsed.Path("error.kind").Data())

	posts, err := a.client.ListPosts(t.Context(), "")
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestServer_Openapi(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t, nil)

	res, err := http.Get(a.url + "/api/openapi")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	doc, err := gabs.ParseJSON(data)
	require.NoError(t, err)
	require.Equal(t, "3.0.3", doc.Path("openapi").Data())
	require.True(t, doc.Exists("paths", "/api/posts/{id}/like"))
}
