// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/utils"
	"github.com/MKhiriev/go-blog-client/models"
)

type usernameCtxKey struct{}

// withRequestID propagates the X-Request-ID of the request (or a fresh one)
// to the response and to a child logger stored in the request context.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		log := s.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", requestID)
		})

		ctx := utils.WithRequestID(log.WithContext(r.Context()), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", rw.status).
			Dur("duration", time.Since(start)).
			Int("size", rw.size).
			Msg("request handled")
	})
}

// withRecording stores what the client sent. The body is restored for the
// handlers.
func (s *Server) withRecording(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		cookies := make(map[string]string)
		for _, c := range r.Cookies() {
			cookies[c.Name] = c.Value
		}
		requestID, _ := utils.GetRequestIDFromContext(r.Context())

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.EscapedPath(), "/api/"),
			Authorization: r.Header.Get("Authorization"),
			RequestID:     requestID,
			Cookies:       cookies,
			Body:          string(body),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// withInjectedFailures answers a request registered with FailNext with the
// configured status, once.
func (s *Server) withInjectedFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.EscapedPath(), "/api/")

		s.mu.Lock()
		status, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if ok {
			writeError(w, status, fmt.Errorf("injected failure for %s", key))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// auth rejects requests without a valid bearer token and stores the token
// subject (the username) in the request context.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		header := r.Header.Get("Authorization")
		if header == "" {
			log.Err(ErrEmptyAuthorizationHeader).Msg("unauthorized request")
			writeError(w, http.StatusUnauthorized, ErrEmptyAuthorizationHeader)
			return
		}

		username, err := s.validateToken(header)
		if err != nil {
			log.Err(err).Msg("unauthorized request")
			writeError(w, http.StatusUnauthorized, ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), usernameCtxKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) validateToken(header string) (string, error) {
	tokenString, err := utils.ParseBearerToken(header)
	if err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.signKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	s.mu.Lock()
	_, exists := s.accounts[claims.Subject]
	s.mu.Unlock()
	if !exists {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func usernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameCtxKey{}).(string)
	return username
}

func writeError(w http.ResponseWriter, status int, err error) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{
		Status:  status,
		Message: err.Error(),
		Error:   http.StatusText(status),
	}, status)
}
