// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-blog-client/internal/service"
)

type menuAction int

const (
	actionAllPosts menuAction = iota
	actionMyPosts
	actionAuthorPosts
	actionNewPost
	actionLogin
	actionRegister
	actionLogout
)

type menuItem struct {
	title  string
	action menuAction
}

var (
	guestMenu = []menuItem{
		{title: "Все записи", action: actionAllPosts},
		{title: "Записи автора", action: actionAuthorPosts},
		{title: "Войти", action: actionLogin},
		{title: "Зарегистрироваться", action: actionRegister},
	}
	userMenu = []menuItem{
		{title: "Все записи", action: actionAllPosts},
		{title: "Мои записи", action: actionMyPosts},
		{title: "Записи автора", action: actionAuthorPosts},
		{title: "Новая запись", action: actionNewPost},
		{title: "Выйти", action: actionLogout},
	}
)

// MenuModel is the start page. Its items depend on whether a session is
// active.
type MenuModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	items      []menuItem
	idx        int
	submitting bool
	status     string
	errMsg     string
	now        func() time.Time
}

func NewMenuModel(ctx context.Context, auth service.ClientAuthService) *MenuModel {
	m := &MenuModel{ctx: ctx, auth: auth, now: time.Now}
	m.refresh()
	return m
}

func (m *MenuModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterSuccessNotice:
		m.refresh()
		m.errMsg = ""
		if msg.Username != "" {
			m.status = "Пользователь " + msg.Username + " успешно зарегистрирован"
		} else {
			m.status = "Регистрация прошла успешно"
		}
		return m, nil
	case LoginSuccessNotice:
		m.refresh()
		m.errMsg = ""
		m.status = "Добро пожаловать, " + msg.Username
		return m, nil
	case LogoutResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.Err)
			return m, nil
		}
		m.refresh()
		m.status = "Вы вышли из системы"
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.enter):
		if m.submitting || len(m.items) == 0 {
			return m, nil
		}
		m.status = ""
		m.errMsg = ""
		return m, m.selected(m.items[m.idx].action)
	}

	return m, nil
}

func (m *MenuModel) selected(action menuAction) tea.Cmd {
	switch action {
	case actionAllPosts:
		return navigate(pagePosts, ShowPosts{})
	case actionMyPosts:
		session := m.auth.Session()
		if !session.Authenticated() {
			m.refresh()
			return nil
		}
		return navigate(pagePosts, ShowPosts{Username: session.User.Username})
	case actionAuthorPosts:
		return navigate(pageAuthor, nil)
	case actionNewPost:
		return navigate(pageForm, EditPost{})
	case actionLogin:
		return navigate(pageLogin, nil)
	case actionRegister:
		return navigate(pageRegister, nil)
	case actionLogout:
		m.submitting = true
		return m.cmdLogout()
	}
	return nil
}

func (m *MenuModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		return LogoutResult{Err: auth.Logout(ctx)}
	}
}

func (m *MenuModel) refresh() {
	if m.auth.Session().Authenticated() {
		m.items = userMenu
	} else {
		m.items = guestMenu
	}
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
}

func (m *MenuModel) View() string {
	var b strings.Builder
	idColWidth := lipgloss.Width("ID")
	itemsCountWidth := lipgloss.Width(fmt.Sprintf("%d", len(m.items)))
	if itemsCountWidth > idColWidth {
		idColWidth = itemsCountWidth
	}
	idColWidth += 2 // reserve space for selection marker and space ("<marker> <id>")

	actionColWidth := lipgloss.Width("Действие")
	for _, item := range m.items {
		if w := lipgloss.Width(item.title); w > actionColWidth {
			actionColWidth = w
		}
	}

	b.WriteString(sessionStatus(m.auth.Session(), m.now()))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, "ID", actionColWidth, "Действие"))
	b.WriteString(strings.Repeat("─", idColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", actionColWidth))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		idCell := fmt.Sprintf("%s %d", cursor, i+1)
		b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, idCell, actionColWidth, item.title))
	}

	if m.submitting {
		b.WriteString("\nВыход...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("ГЛАВНОЕ МЕНЮ", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ v: версия │ q: выход")
}

func navigate(page string, payload tea.Msg) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}
