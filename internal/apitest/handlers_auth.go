// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apitest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/utils"
	"github.com/MKhiriev/go-blog-client/models"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	s.mu.Lock()
	acc := s.findAccountLocked(req.Identifier)
	s.mu.Unlock()
	if acc == nil || acc.password != req.Secret {
		log.Warn().Str("identifier", req.Identifier).Msg("login rejected")
		writeError(w, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateJWTToken(tokenIssuer, acc.user.Username, tokenDuration, s.signKey)
	if err != nil {
		log.Err(err).Msg("error generating token")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "refresh-" + acc.user.ID,
		Path:     "/",
		HttpOnly: true,
	})

	_, _ = utils.WriteJSON(w, models.LoginResponse{
		Token:    token,
		UserID:   acc.user.ID,
		Username: acc.user.Username,
		Email:    acc.user.Email,
		Role:     acc.user.Role,
	}, http.StatusOK)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   RefreshCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	_, _ = utils.WriteJSON(w, models.LogoutResponse{Message: "logged out"}, http.StatusOK)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidBody)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	s.mu.Lock()
	if s.findAccountLocked(req.Username) != nil || s.findAccountLocked(req.Email) != nil {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, ErrUsernameTaken)
		return
	}
	s.addUserLocked(req.Username, req.Email, req.Password)
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.RegisterResponse{Message: "registered"}, http.StatusCreated)
}

// findAccountLocked looks an account up by username or email.
func (s *Server) findAccountLocked(identifier string) *account {
	if acc, ok := s.accounts[identifier]; ok {
		return acc
	}
	for _, acc := range s.accounts {
		if acc.user.Email == identifier {
			return acc
		}
	}
	return nil
}
