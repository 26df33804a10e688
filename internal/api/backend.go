package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/auth"
	"inkwell/internal/core"
	"inkwell/internal/engagement"
)

type newPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type postUpdateRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type newCommentRequest struct {
	Text     string  `json:"text"`
	ParentID *string `json:"parentId"`
}

type commentUpdateRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Backend translates HTTP requests into engine calls.
type Backend struct {
	Logger *slog.Logger
	Engine *engagement.Engine
}

func (b *Backend) GetOpenapi(w http.ResponseWriter, _ *http.Request) {
	s := map[string]any{}

	if err := json.Unmarshal(openAPISpec, &s); err != nil {
		writeError(w, b.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := b.Engine.ListPosts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (b *Backend) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req newPostRequest
	if !decode(w, r, &req) {
		return
	}

	post, err := b.Engine.CreatePost(r.Context(), auth.RequesterFromContext(r.Context()), req.Title, req.Body)
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (b *Backend) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := b.Engine.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (b *Backend) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	post, err := b.Engine.UpdatePost(r.Context(), chi.URLParam(r, "id"), auth.RequesterFromContext(r.Context()),
		core.PostUpdate{Title: req.Title, Body: req.Body})
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (b *Backend) DeletePost(w http.ResponseWriter, r *http.Request) {
	err := b.Engine.DeletePost(r.Context(), chi.URLParam(r, "id"), auth.RequesterFromContext(r.Context()))
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "post deleted"})
}

func (b *Backend) ToggleLike(w http.ResponseWriter, r *http.Request) {
	res, err := b.Engine.ToggleLike(r.Context(), chi.URLParam(r, "id"), auth.RequesterFromContext(r.Context()))
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (b *Backend) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := b.Engine.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (b *Backend) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req newCommentRequest
	if !decode(w, r, &req) {
		return
	}

	comment, err := b.Engine.CreateComment(r.Context(), chi.URLParam(r, "id"), auth.RequesterFromContext(r.Context()),
		req.Text, req.ParentID)
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (b *Backend) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req commentUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	comment, err := b.Engine.UpdateComment(r.Context(), chi.URLParam(r, "id"), auth.RequesterFromContext(r.Context()), req.Text)
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

func (b *Backend) DeleteComment(w http.ResponseWriter, r *http.Request) {
	err := b.Engine.DeleteComment(r.Context(), chi.URLParam(r, "id"), auth.RequesterFromContext(r.Context()))
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "comment deleted"})
}

func (b *Backend) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := b.Engine.Dashboard(r.Context(), auth.RequesterFromContext(r.Context()))
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (b *Backend) GetActivity(w http.ResponseWriter, r *http.Request) {
	activities, err := b.Engine.RecentActivity(r.Context(), auth.RequesterFromContext(r.Context()))
	if err != nil {
		writeError(w, logger(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"activity": activities})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, logger(r.Context()), fmt.Errorf("%w: malformed request body: %w", core.ErrValidation, err))
		return false
	}
	return true
}

func (b *Backend) Init(_ context.Context) error {
	b.Logger = b.Logger.With("component", "api.Backend")
	return nil
}
