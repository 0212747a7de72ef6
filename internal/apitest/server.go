// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apitest

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/models"
)

const (
	tokenIssuer   = "blog-apitest"
	tokenDuration = time.Hour

	// RefreshCookie is set at login and expected back on every request.
	RefreshCookie = "refreshToken"
)

// RecordedRequest is what the server saw of one request.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Cookies       map[string]string
	Body          string
}

type account struct {
	user     models.User
	password string
}

// Server is the in-memory blog API.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account // by username
	posts    []models.BlogModel
	nextID   int
	failures map[string]int // "METHOD path" -> status
	requests []RecordedRequest

	signKey string
	now     func() time.Time
	logger  *logger.Logger
}

func NewServer(logger *logger.Logger) *Server {
	return &Server{
		accounts: make(map[string]*account),
		failures: make(map[string]int),
		signKey:  "apitest-sign-key",
		now:      time.Now,
		logger:   logger,
	}
}

// Start serves the API on a local listener. The base URL of the API is
// the returned server's URL + "/api/".
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.Handler())
}

// Handler returns the router of the API.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withRequestID)
	router.Use(s.withLogging)
	router.Use(s.withRecording)
	router.Use(s.withInjectedFailures)

	router.Route("/api", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/auth/login", s.login)
			r.Post("/auth/register", s.register)
			r.Get("/posts/all", s.listAll)
			r.Head("/posts/all", s.listAll)
			r.Get("/posts/user/{username}", s.listByUser)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.auth)
			r.Post("/auth/logout", s.logout)
			r.Post("/posts/post/create", s.createPost)
			r.Put("/posts/post/update", s.updatePost)
			r.Delete("/posts/post/delete", s.deletePost)
		})
	})

	return router
}

// AddUser registers an account directly.
func (s *Server) AddUser(username, email, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addUserLocked(username, email, password)
}

func (s *Server) addUserLocked(username, email, password string) models.User {
	s.nextID++
	user := models.User{ID: "u" + strconv.Itoa(s.nextID), Username: username, Email: email, Role: "user"}
	s.accounts[username] = &account{user: user, password: password}
	return user
}

// AddPost stores a post authored by username directly.
func (s *Server) AddPost(username, title, content string) models.BlogModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addPostLocked(username, title, content)
}

func (s *Server) addPostLocked(username, title, content string) models.BlogModel {
	s.nextID++
	now := s.now().UTC()
	post := models.BlogModel{
		ID:        "p" + strconv.Itoa(s.nextID),
		Title:     title,
		Content:   content,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts = append(s.posts, post)
	return post
}

// FailNext makes the next request to method+path answer with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[method+" "+path] = status
}

// Requests returns a copy of all recorded requests.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// CountRequests returns how many requests matched method and path.
func (s *Server) CountRequests(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Posts returns a copy of the stored posts.
func (s *Server) Posts() []models.BlogModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.posts)
}
