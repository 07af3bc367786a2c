// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"penblog/internal/blog"
	"penblog/internal/middleware"
	"penblog/internal/models"
)

// API groups the blog endpoints under /api.
type API struct {
	categories *blog.Categories
	posts      *blog.Posts
	comments   *blog.Comments
	parseID    blog.IDParser
}

// NewAPI creates the API handler group. parseID must be the same predicate
// the services were built with; nil selects blog.ParseID.
func NewAPI(categories *blog.Categories, posts *blog.Posts, comments *blog.Comments, parseID blog.IDParser) *API {
	if parseID == nil {
		parseID = blog.ParseID
	}
	return &API{
		categories: categories,
		posts:      posts,
		comments:   comments,
		parseID:    parseID,
	}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=200"`
}

type categoryPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
}

type createPostRequest struct {
	Title         string   `json:"title" validate:"required,max=100"`
	Slug          *string  `json:"slug" validate:"omitempty,max=120"`
	Content       string   `json:"content" validate:"required"`
	Excerpt       *string  `json:"excerpt" validate:"omitempty,max=200"`
	Category      string   `json:"category" validate:"required"`
	Tags          []string `json:"tags" validate:"max=50,dive,max=100"`
	IsPublished   *bool    `json:"isPublished"`
	FeaturedImage *string  `json:"featuredImage" validate:"omitempty,max=2048"`
}

type updatePostRequest struct {
	Title         *string   `json:"title" validate:"omitempty,max=100"`
	Slug          *string   `json:"slug" validate:"omitempty,max=120"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt" validate:"omitempty,max=200"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags" validate:"omitempty,max=50,dive,max=100"`
	IsPublished   *bool     `json:"isPublished"`
	FeaturedImage *string   `json:"featuredImage" validate:"omitempty,max=2048"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// ListCategories handles GET /api/categories.
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := a.categories.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, items)
}

// GetCategory handles GET /api/categories/{idOrSlug}.
func (a *API) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := a.categories.Resolve(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

// CreateCategory handles POST /api/categories.
func (a *API) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	c, err := a.categories.Create(r.Context(), models.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, c)
}

// UpdateCategory handles PUT /api/categories/{idOrSlug}.
func (a *API) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPatchRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	c, err := a.categories.Update(r.Context(), chi.URLParam(r, "idOrSlug"), models.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

// ListPosts handles GET /api/posts?page=&limit=&category=&published=.
// Unparseable numbers fall back to the defaults.
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := blog.ListQuery{
		Page:     queryInt(q.Get("page")),
		Limit:    queryInt(q.Get("limit")),
		Category: q.Get("category"),
	}
	if v, err := strconv.ParseBool(q.Get("published")); err == nil {
		query.Published = &v
	}

	page, err := a.posts.List(r.Context(), query)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondPage(w, page.Items, page.Pagination)
}

// SearchPosts handles GET /api/posts/search?q=.
func (a *API) SearchPosts(w http.ResponseWriter, r *http.Request) {
	items, err := a.posts.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, items)
}

// GetPost handles GET /api/posts/{id}, where the path segment may also be
// a slug.
func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	p, err := a.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

// CreatePost handles POST /api/posts.
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	p, err := a.posts.Create(r.Context(), middleware.UserIDFromContext(r.Context()), models.PostInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Category:      req.Category,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
		FeaturedImage: req.FeaturedImage,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, p)
}

// UpdatePost handles PUT /api/posts/{id}.
func (a *API) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := a.parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, models.NewValidationError("id", "Invalid post id"))
		return
	}

	var req updatePostRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	p, err := a.posts.Update(r.Context(), id, models.PostPatch{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Category:      req.Category,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
		FeaturedImage: req.FeaturedImage,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

// DeletePost handles DELETE /api/posts/{id}. A malformed id cannot name
// any post, so it is reported as not found.
func (a *API) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := a.parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, models.ErrPostNotFound)
		return
	}

	if err := a.posts.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Post deleted")
}

// AddComment handles POST /api/posts/{id}/comments.
func (a *API) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := a.parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, models.NewValidationError("id", "Invalid post id"))
		return
	}

	var req commentRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	err := a.comments.Add(r.Context(), id, middleware.UserIDFromContext(r.Context()), req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Comment added")
}

// queryInt parses a query parameter, returning 0 when absent or invalid.
func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
