// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-client/internal/service"
	"github.com/MKhiriev/go-blog-client/models"
)

const statusTimeout = 2 * time.Second

// PostsModel lists the posts of one author, or all posts, and shows a
// single post in detail. The listing reloads whenever the cache reports it
// stale.
type PostsModel struct {
	ctx             context.Context
	blog            service.ClientBlogService
	auth            service.ClientAuthService
	copyToClipboard func(string) error

	username string
	posts    []models.BlogModel
	idx      int
	loading  bool
	detail   bool
	status   string
	spinner  spinner.Model
	sub      *subscription

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete *models.BlogModel
}

func NewPostsModel(ctx context.Context, blog service.ClientBlogService, auth service.ClientAuthService, copyToClipboard func(string) error) *PostsModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &PostsModel{
		ctx:             ctx,
		blog:            blog,
		auth:            auth,
		copyToClipboard: copyToClipboard,
		spinner:         s,
	}
}

// Init reopens the current listing.
func (m *PostsModel) Init() tea.Cmd {
	return m.open(m.username)
}

func (m *PostsModel) open(username string) tea.Cmd {
	m.sub.stop()

	m.username = username
	m.posts = nil
	m.idx = 0
	m.detail = false
	m.loading = true
	m.showError = false
	m.showConfirm = false
	m.pendingDelete = nil
	m.sub = newSubscription(m.blog.Subscribe(username))

	return tea.Batch(m.cmdLoad(false), m.sub.wait(), m.spinner.Tick)
}

func (m *PostsModel) close() tea.Cmd {
	m.sub.stop()
	m.sub = nil
	return navigate(pageMenu, nil)
}

func (m *PostsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowPosts:
		return m, m.open(msg.Username)
	case postsLoadedMsg:
		if msg.username != m.username {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setError(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.posts = msg.posts
		m.clampIdx()
		return m, nil
	case postsInvalidatedMsg:
		if m.sub == nil || msg.sub != m.sub {
			return m, nil
		}
		return m, tea.Batch(m.cmdLoad(false), m.sub.wait())
	case postDeletedMsg:
		if msg.err != nil {
			m.setError(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.detail = false
		m.status = "Запись \"" + msg.title + "\" удалена"
		return m, tea.Batch(m.cmdLoad(false), cmdClearStatus())
	case copiedMsg:
		if msg.err != nil {
			m.status = "Не удалось скопировать: " + msg.err.Error()
		} else {
			m.status = "Скопировано!"
		}
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *PostsModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}

	if m.showConfirm {
		if key.Matches(msg, keys.yes) {
			m.showConfirm = false
			post := m.pendingDelete
			m.pendingDelete = nil
			if post == nil {
				return m, nil
			}
			return m, m.cmdDelete(*post)
		}
		if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
			m.showConfirm = false
			m.pendingDelete = nil
		}
		return m, nil
	}

	post, hasPost := m.current()

	switch {
	case key.Matches(msg, keys.esc):
		if m.detail {
			m.detail = false
			return m, nil
		}
		return m, m.close()
	case key.Matches(msg, keys.up):
		if !m.detail && m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if !m.detail && m.idx < len(m.posts)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if hasPost {
			m.detail = true
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, tea.Batch(m.cmdLoad(true), m.spinner.Tick)
	case key.Matches(msg, keys.newItem):
		if !m.auth.Session().Authenticated() {
			m.status = "Войдите, чтобы писать"
			return m, cmdClearStatus()
		}
		return m, navigate(pageForm, EditPost{})
	case key.Matches(msg, keys.edit):
		if !hasPost {
			return m, nil
		}
		if !m.ownPost(post) {
			m.status = "Можно изменять только свои записи"
			return m, cmdClearStatus()
		}
		return m, navigate(pageForm, EditPost{Post: &post})
	case key.Matches(msg, keys.delete):
		if !hasPost {
			return m, nil
		}
		if !m.ownPost(post) {
			m.status = "Можно удалять только свои записи"
			return m, cmdClearStatus()
		}
		m.pendingDelete = &post
		m.confirm.message = post.Title
		m.showConfirm = true
	case key.Matches(msg, keys.copy):
		if hasPost {
			return m, m.cmdCopy(post.Content)
		}
	}

	return m, nil
}

func (m *PostsModel) View() string {
	if m.showError {
		return m.errorOverlay.View()
	}
	if m.showConfirm {
		return m.confirm.View()
	}

	title := "ВСЕ ЗАПИСИ"
	if m.username != "" {
		title = "ЗАПИСИ АВТОРА " + m.username
	}

	if m.detail {
		if post, ok := m.current(); ok {
			return renderPage(title, m.viewDetail(post), "esc: к списку │ e: изменить │ d: удалить │ c: копировать")
		}
	}

	var b strings.Builder
	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Загрузка...\n")
	}

	if len(m.posts) == 0 && !m.loading {
		b.WriteString("Нет записей\n")
	}
	for i, post := range m.posts {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		row := fmt.Sprintf("%s%-40s │ %-16s │ %s", cursor, fitText(firstLine(post.Title), 40), fitText(post.Username, 16), formatTime(post.UpdatedAt))
		if m.ownPost(post) {
			row = ownPostStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"enter: открыть │ r: обновить │ n: новая │ e: изменить │ d: удалить │ c: копировать │ esc: меню")
}

func (m *PostsModel) viewDetail(post models.BlogModel) string {
	var b strings.Builder
	b.WriteString("Заголовок: ")
	b.WriteString(post.Title)
	b.WriteString("\nАвтор:     ")
	b.WriteString(post.Username)
	b.WriteString("\nСоздана:   ")
	b.WriteString(formatTime(post.CreatedAt))
	b.WriteString("\nИзменена:  ")
	b.WriteString(formatTime(post.UpdatedAt))
	b.WriteString("\n\n")
	b.WriteString(post.Content)

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}
	return b.String()
}

func (m *PostsModel) cmdLoad(force bool) tea.Cmd {
	ctx := m.ctx
	blog := m.blog
	username := m.username

	return func() tea.Msg {
		var (
			posts []models.BlogModel
			err   error
		)
		switch {
		case username == "" && force:
			posts, err = blog.RefetchAll(ctx)
		case username == "":
			posts, err = blog.ListAll(ctx)
		case force:
			posts, err = blog.RefetchByUser(ctx, username)
		default:
			posts, err = blog.ListByUser(ctx, username)
		}
		return postsLoadedMsg{username: username, posts: posts, err: err}
	}
}

func (m *PostsModel) cmdDelete(post models.BlogModel) tea.Cmd {
	ctx := m.ctx
	blog := m.blog

	return func() tea.Msg {
		_, err := blog.Delete(ctx, models.NewBlogDeleteRequest(post))
		return postDeletedMsg{title: post.Title, err: err}
	}
}

func (m *PostsModel) cmdCopy(content string) tea.Cmd {
	copyToClipboard := m.copyToClipboard

	return func() tea.Msg {
		return copiedMsg{err: copyToClipboard(content)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *PostsModel) current() (models.BlogModel, bool) {
	if len(m.posts) == 0 || m.idx < 0 || m.idx >= len(m.posts) {
		return models.BlogModel{}, false
	}
	return m.posts[m.idx], true
}

func (m *PostsModel) ownPost(post models.BlogModel) bool {
	session := m.auth.Session()
	return session.Authenticated() && session.User.Username == post.Username
}

func (m *PostsModel) clampIdx() {
	if m.idx >= len(m.posts) {
		m.idx = len(m.posts) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *PostsModel) setError(message string) {
	m.showError = true
	m.errorOverlay.message = message
}
