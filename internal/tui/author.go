// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AuthorModel asks for a username and opens the posts of that author.
type AuthorModel struct {
	input  textinput.Model
	errMsg string
}

func NewAuthorModel() *AuthorModel {
	input := textinput.New()
	input.Placeholder = "username"
	input.CharLimit = 32
	input.Width = 40
	input.Focus()

	return &AuthorModel{input: input}
}

func (m *AuthorModel) Init() tea.Cmd {
	m.errMsg = ""
	m.input.Focus()
	return textinput.Blink
}

func (m *AuthorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.errMsg = ""
			return m, navigate(pageMenu, nil)
		case "enter":
			username := strings.TrimSpace(m.input.Value())
			if username == "" {
				m.errMsg = "Укажите автора"
				return m, nil
			}
			m.errMsg = ""
			return m, navigate(pagePosts, ShowPosts{Username: username})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *AuthorModel) View() string {
	var b strings.Builder
	b.WriteString("Автор │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("ЗАПИСИ АВТОРА", strings.TrimRight(b.String(), "\n"), "esc: назад │ enter: показать")
}
