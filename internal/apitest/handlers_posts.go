// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apitest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-blog-client/internal/utils"
	"github.com/MKhiriev/go-blog-client/models"
)

func (s *Server) listAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	posts := slices.Clone(s.posts)
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.BlogListResponse{Posts: nonNil(posts)}, http.StatusOK)
}

func (s *Server) listByUser(w http.ResponseWriter, r *http.Request) {
	username, err := url.PathUnescape(chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	var posts []models.BlogModel
	for _, p := range s.posts {
		if p.Username == username {
			posts = append(posts, p)
		}
	}
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.BlogListResponse{Posts: nonNil(posts)}, http.StatusOK)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var req models.BlogCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || isBlank(req.Title) || isBlank(req.Content) {
		writeError(w, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	s.mu.Lock()
	post := s.addPostLocked(usernameFromContext(r.Context()), req.Title, req.Content)
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.BlogResponse{Message: "created", Post: &post}, http.StatusCreated)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	var req models.BlogUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" || isBlank(req.Title) || isBlank(req.Content) {
		writeError(w, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, status, err := s.ownedPostLocked(req.ID, usernameFromContext(r.Context()))
	if err != nil {
		writeError(w, status, err)
		return
	}

	s.posts[i].Title = req.Title
	s.posts[i].Content = req.Content
	s.posts[i].UpdatedAt = s.now().UTC()
	post := s.posts[i]

	_, _ = utils.WriteJSON(w, models.BlogResponse{Message: "updated", Post: &post}, http.StatusOK)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	var req models.BlogDeletePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, status, err := s.ownedPostLocked(req.ID, usernameFromContext(r.Context()))
	if err != nil {
		writeError(w, status, err)
		return
	}

	post := s.posts[i]
	s.posts = slices.Delete(s.posts, i, i+1)

	_, _ = utils.WriteJSON(w, models.BlogResponse{Message: "deleted", Post: &post}, http.StatusOK)
}

// ownedPostLocked returns the index of post id if username may modify it.
func (s *Server) ownedPostLocked(id, username string) (int, int, error) {
	i := slices.IndexFunc(s.posts, func(p models.BlogModel) bool { return p.ID == id })
	if i < 0 {
		return 0, http.StatusNotFound, ErrPostNotFound
	}
	if s.posts[i].Username != username {
		return 0, http.StatusForbidden, ErrNotPostOwner
	}
	return i, 0, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func nonNil(posts []models.BlogModel) []models.BlogModel {
	if posts == nil {
		return []models.BlogModel{}
	}
	return posts
}
