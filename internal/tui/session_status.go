// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	"github.com/MKhiriev/go-blog-client/internal/utils"
	"github.com/MKhiriev/go-blog-client/models"
)

// sessionStatus describes who is signed in and until when the token is
// valid, if the token says so.
func sessionStatus(session models.Session, now time.Time) string {
	if !session.Authenticated() {
		return "Гость"
	}

	status := "Пользователь: " + session.User.Username
	expiresAt, ok, err := utils.TokenExpiry(session.Token)
	switch {
	case err != nil, !ok:
		return status
	case !expiresAt.After(now):
		return status + " (сессия истекла)"
	default:
		return status + " (сессия до " + formatTime(expiresAt) + ")"
	}
}
