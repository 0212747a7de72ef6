// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-client/internal/service"
	"github.com/MKhiriev/go-blog-client/models"
)

const (
	focusTitle = iota
	focusContent
)

// PostFormModel creates a new post or edits an existing one.
type PostFormModel struct {
	ctx  context.Context
	blog service.ClientBlogService

	title      textinput.Model
	content    textarea.Model
	focus      int
	editing    *models.BlogModel
	submitting bool
	errMsg     string
}

func NewPostFormModel(ctx context.Context, blog service.ClientBlogService) *PostFormModel {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Width = 60

	content := textarea.New()
	content.Placeholder = "content"
	content.CharLimit = 0
	content.SetWidth(60)
	content.SetHeight(10)

	m := &PostFormModel{ctx: ctx, blog: blog, title: title, content: content}
	m.reset(nil)
	return m
}

func (m *PostFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PostFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EditPost:
		m.reset(msg.Post)
		return m, textinput.Blink
	case postSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.reset(nil)
		return m, navigate(pagePosts, nil)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.reset(nil)
			return m, navigate(pagePosts, nil)
		case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
			m.toggleFocus()
			return m, nil
		case key.Matches(msg, keys.save):
			return m, m.submit()
		case key.Matches(msg, keys.enter) && m.focus == focusTitle:
			m.toggleFocus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *PostFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	title := strings.TrimSpace(m.title.Value())
	content := m.content.Value()
	if title == "" || strings.TrimSpace(content) == "" {
		m.errMsg = "Заголовок и текст обязательны"
		return nil
	}

	m.errMsg = ""
	m.submitting = true
	return m.cmdSave(title, content)
}

func (m *PostFormModel) cmdSave(title, content string) tea.Cmd {
	ctx := m.ctx
	blog := m.blog
	editing := m.editing

	return func() tea.Msg {
		var err error
		if editing == nil {
			_, err = blog.Create(ctx, models.BlogCreateRequest{Title: title, Content: content})
		} else {
			_, err = blog.Update(ctx, models.BlogUpdateRequest{ID: editing.ID, Title: title, Content: content})
		}
		return postSavedMsg{err: err}
	}
}

func (m *PostFormModel) View() string {
	title := "НОВАЯ ЗАПИСЬ"
	if m.editing != nil {
		title = "РЕДАКТИРОВАНИЕ: " + fitText(m.editing.Title, 40)
	}

	var b strings.Builder
	b.WriteString("Заголовок │ [")
	b.WriteString(m.title.View())
	b.WriteString("]\n\n")
	b.WriteString("Текст\n")
	b.WriteString(m.content.View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Сохранить...]\n")
	} else {
		b.WriteString("\n[Сохранить]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: отмена │ tab: след. поле │ ctrl+s: сохранить")
}

func (m *PostFormModel) reset(post *models.BlogModel) {
	m.editing = nil
	m.errMsg = ""
	m.submitting = false
	m.title.SetValue("")
	m.content.SetValue("")

	if post != nil {
		p := *post
		m.editing = &p
		m.title.SetValue(p.Title)
		m.content.SetValue(p.Content)
	}

	m.focus = focusTitle
	m.title.Focus()
	m.content.Blur()
}

func (m *PostFormModel) toggleFocus() {
	if m.focus == focusTitle {
		m.focus = focusContent
		m.title.Blur()
		m.content.Focus()
		return
	}
	m.focus = focusTitle
	m.content.Blur()
	m.title.Focus()
}
