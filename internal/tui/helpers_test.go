// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-client/models"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func signedIn(username string) models.Session {
	return models.Session{
		User:  &models.User{ID: "u1", Username: username},
		Token: "opaque-token",
	}
}

// navigation runs cmd and returns the NavigateTo it produced.
func navigation(cmd tea.Cmd) (NavigateTo, bool) {
	if cmd == nil {
		return NavigateTo{}, false
	}
	nav, ok := cmd().(NavigateTo)
	return nav, ok
}
