// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-blog-client/internal/adapter"
	"github.com/MKhiriev/go-blog-client/internal/cache"
	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/session"
	"github.com/MKhiriev/go-blog-client/internal/store"
)

type ClientServices struct {
	AuthService ClientAuthService
	BlogService ClientBlogService
}

func NewClientServices(
	serverAdapter adapter.ServerAdapter,
	sessions *session.Store,
	storages *store.ClientStorages,
	queryCache *cache.QueryCache,
	logger *logger.Logger,
) *ClientServices {
	return &ClientServices{
		AuthService: NewClientAuthService(serverAdapter, sessions, storages.Session, logger),
		BlogService: NewClientBlogService(serverAdapter, queryCache, logger),
	}
}
