// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-client/models"
)

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
	pageAuthor   = "author"
	pagePosts    = "posts"
	pageForm     = "form"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to
// the new page as a message instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// ShowPosts opens the posts page for Username, or all posts when empty.
type ShowPosts struct {
	Username string
}

// EditPost opens the post form. A nil Post creates a new one.
type EditPost struct {
	Post *models.BlogModel
}

type LoginResult struct {
	Err      error
	Username string
}

type LoginSuccessNotice struct {
	Username string
}

type RegisterResult struct {
	Err      error
	Username string
}

type RegisterSuccessNotice struct {
	Username string
}

type LogoutResult struct {
	Err error
}

type postsLoadedMsg struct {
	username string
	posts    []models.BlogModel
	err      error
}

type postsInvalidatedMsg struct {
	sub *subscription
}

type postSavedMsg struct {
	err error
}

type postDeletedMsg struct {
	title string
	err   error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
