// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-blog-client/internal/adapter"
	"github.com/MKhiriev/go-blog-client/internal/service"
)

// ErrUserQuit is returned by [TUI.Run] when the user closed the program.
var ErrUserQuit = errors.New("user quit")

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Некорректные данные"
	case errors.Is(err, adapter.ErrUnauthorized) && errors.Is(err, service.ErrLoginOnServer):
		return "Неверный логин или пароль"
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Сессия истекла, войдите снова"
	case errors.Is(err, adapter.ErrForbidden):
		return "Недостаточно прав"
	case errors.Is(err, adapter.ErrConflict):
		return "Пользователь уже существует"
	}

	if apiErr, ok := adapter.AsAPIError(err); ok && apiErr.Response.Message != "" {
		return apiErr.Response.Message
	}

	return err.Error()
}
