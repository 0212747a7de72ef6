// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-blog-client/internal/mock"
	"github.com/MKhiriev/go-blog-client/models"
)

func TestMenuModel_GuestItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockClientAuthService(ctrl)
	auth.EXPECT().Session().Return(models.Session{}).AnyTimes()

	m := NewMenuModel(context.Background(), auth)
	assert.Equal(t, guestMenu, m.items)

	view := m.View()
	assert.Contains(t, view, "Гость")
	assert.Contains(t, view, "Войти")
	assert.NotContains(t, view, "Выйти")
}

func TestMenuModel_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		session  models.Session
		downs    int
		wantPage string
		wantLoad tea.Msg
	}{
		{name: "all posts", session: models.Session{}, downs: 0, wantPage: pagePosts, wantLoad: ShowPosts{}},
		{name: "author", session: models.Session{}, downs: 1, wantPage: pageAuthor},
		{name: "login", session: models.Session{}, downs: 2, wantPage: pageLogin},
		{name: "register", session: models.Session{}, downs: 3, wantPage: pageRegister},
		{name: "my posts", session: signedIn("alice"), downs: 1, wantPage: pagePosts, wantLoad: ShowPosts{Username: "alice"}},
		{name: "new post", session: signedIn("alice"), downs: 3, wantPage: pageForm, wantLoad: EditPost{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mock.NewMockClientAuthService(ctrl)
			auth.EXPECT().Session().Return(tt.session).AnyTimes()

			m := NewMenuModel(context.Background(), auth)
			for range tt.downs {
				m.Update(keyType(tea.KeyDown))
			}

			_, cmd := m.Update(keyType(tea.KeyEnter))
			nav, ok := navigation(cmd)
			require.True(t, ok)
			assert.Equal(t, tt.wantPage, nav.Page)
			assert.Equal(t, tt.wantLoad, nav.Payload)
		})
	}
}

func TestMenuModel_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockClientAuthService(ctrl)

	loggedIn := true
	auth.EXPECT().Session().DoAndReturn(func() models.Session {
		if loggedIn {
			return signedIn("alice")
		}
		return models.Session{}
	}).AnyTimes()

	m := NewMenuModel(context.Background(), auth)
	require.Equal(t, userMenu, m.items)
	m.idx = len(userMenu) - 1

	t.Run("server failure keeps the menu", func(t *testing.T) {
		auth.EXPECT().Logout(gomock.Any()).Return(errors.New("boom"))

		_, cmd := m.Update(keyType(tea.KeyEnter))
		require.NotNil(t, cmd)
		assert.True(t, m.submitting)

		m.Update(cmd())
		assert.False(t, m.submitting)
		assert.Equal(t, "boom", m.errMsg)
		assert.Equal(t, userMenu, m.items)
	})

	t.Run("success switches to guest menu", func(t *testing.T) {
		auth.EXPECT().Logout(gomock.Any()).DoAndReturn(func(context.Context) error {
			loggedIn = false
			return nil
		})

		_, cmd := m.Update(keyType(tea.KeyEnter))
		m.Update(cmd())

		assert.Equal(t, guestMenu, m.items)
		assert.Equal(t, "Вы вышли из системы", m.status)
		assert.Less(t, m.idx, len(guestMenu))
	})
}

func TestMenuModel_Notices(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockClientAuthService(ctrl)
	auth.EXPECT().Session().Return(signedIn("alice")).AnyTimes()

	m := NewMenuModel(context.Background(), auth)

	m.Update(RegisterSuccessNotice{Username: "bob"})
	assert.Contains(t, m.View(), "Пользователь bob успешно зарегистрирован")

	m.Update(LoginSuccessNotice{Username: "alice"})
	assert.Equal(t, "Добро пожаловать, alice", m.status)
	assert.Equal(t, userMenu, m.items)
}
