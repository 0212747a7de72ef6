// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal user interface of the blog client built on
// bubbletea. Every page is a tea.Model; [RootModel] routes between them.
package tui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/service"
	"github.com/MKhiriev/go-blog-client/models"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.AuthService == nil || services.BlogService == nil {
		return nil, errors.New("tui: services are not initialized")
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// Run shows the UI until the user quits or ctx is cancelled. Signed-in users
// start on the list of all posts, guests on the menu.
func (t *TUI) Run(ctx context.Context) error {
	root := t.newRootModel(ctx)

	finalModel, err := tea.NewProgram(root,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

func (t *TUI) newRootModel(ctx context.Context) RootModel {
	auth := t.services.AuthService
	blog := t.services.BlogService

	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(ctx, auth),
		pageLogin:    NewLoginModel(ctx, auth),
		pageRegister: NewRegisterModel(ctx, auth),
		pageAuthor:   NewAuthorModel(),
		pagePosts:    NewPostsModel(ctx, blog, auth, clipboard.WriteAll),
		pageForm:     NewPostFormModel(ctx, blog),
	}

	startPage := pageMenu
	if auth.Session().Authenticated() {
		startPage = pagePosts
	}

	return NewRootModel(pages, startPage, func() {
		t.logger.Debug().Str("func", "TUI.onFocus").Msg("terminal focused, invalidating post listings")
		blog.Invalidate()
	}, t.buildInfo)
}
