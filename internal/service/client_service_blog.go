// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-blog-client/internal/adapter"
	"github.com/MKhiriev/go-blog-client/internal/cache"
	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/models"
)

// TagBlogModel is provided by every post listing and invalidated by every
// post mutation.
const TagBlogModel cache.Tag = "BlogModel"

var blogTags = []cache.Tag{TagBlogModel}

// QueryKeyAll is the cache key of the all-posts listing.
const QueryKeyAll = "posts/all"

// QueryKeyByUser returns the cache key of the listing of username.
func QueryKeyByUser(username string) string {
	return "posts/user/" + username
}

type clientBlogService struct {
	adapter adapter.BlogAdapter
	cache   *cache.QueryCache

	logger *logger.Logger
}

func NewClientBlogService(serverAdapter adapter.BlogAdapter, queryCache *cache.QueryCache, logger *logger.Logger) ClientBlogService {
	return &clientBlogService{
		adapter: serverAdapter,
		cache:   queryCache,
		logger:  logger,
	}
}

func (b *clientBlogService) ListAll(ctx context.Context) ([]models.BlogModel, error) {
	posts, err := cache.Query(ctx, b.cache, QueryKeyAll, blogTags, b.adapter.ListAll)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPostsRequest, err)
	}
	return slices.Clone(posts), nil
}

func (b *clientBlogService) ListByUser(ctx context.Context, username string) ([]models.BlogModel, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrInvalidDataProvided)
	}

	posts, err := cache.Query(ctx, b.cache, QueryKeyByUser(username), blogTags, b.fetchByUser(username))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPostsRequest, err)
	}
	return slices.Clone(posts), nil
}

func (b *clientBlogService) RefetchAll(ctx context.Context) ([]models.BlogModel, error) {
	posts, err := cache.Refetch(ctx, b.cache, QueryKeyAll, blogTags, b.adapter.ListAll)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPostsRequest, err)
	}
	return slices.Clone(posts), nil
}

func (b *clientBlogService) RefetchByUser(ctx context.Context, username string) ([]models.BlogModel, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrInvalidDataProvided)
	}

	posts, err := cache.Refetch(ctx, b.cache, QueryKeyByUser(username), blogTags, b.fetchByUser(username))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPostsRequest, err)
	}
	return slices.Clone(posts), nil
}

func (b *clientBlogService) fetchByUser(username string) func(context.Context) ([]models.BlogModel, error) {
	return func(ctx context.Context) ([]models.BlogModel, error) {
		return b.adapter.ListByUser(ctx, username)
	}
}

func (b *clientBlogService) Create(ctx context.Context, req models.BlogCreateRequest) (models.BlogResponse, error) {
	if err := validateRequest(req); err != nil {
		return models.BlogResponse{}, err
	}

	resp, err := b.adapter.Create(ctx, req)
	if err != nil {
		return models.BlogResponse{}, fmt.Errorf("%w: %w", ErrPostsRequest, err)
	}

	b.invalidate("clientBlogService.Create")
	return resp, nil
}

func (b *clientBlogService) Update(ctx context.Context, req models.BlogUpdateRequest) (models.BlogResponse, error) {
	if err := validateRequest(req); err != nil {
		return models.BlogResponse{}, err
	}

	resp, err := b.adapter.Update(ctx, req)
	if err != nil {
		return models.BlogResponse{}, fmt.Errorf("%w: %w", ErrPostsRequest, err)
	}

	b.invalidate("clientBlogService.Update")
	return resp, nil
}

func (b *clientBlogService) Delete(ctx context.Context, req models.BlogDeleteRequest) (models.BlogResponse, error) {
	if err := validateRequest(req); err != nil {
		return models.BlogResponse{}, err
	}

	resp, err := b.adapter.Delete(ctx, req)
	if err != nil {
		return models.BlogResponse{}, fmt.Errorf("%w: %w", ErrPostsRequest, err)
	}

	b.invalidate("clientBlogService.Delete")
	return resp, nil
}

func (b *clientBlogService) Invalidate() {
	b.invalidate("clientBlogService.Invalidate")
}

func (b *clientBlogService) invalidate(fn string) {
	b.cache.Invalidate(TagBlogModel)
	b.logger.Debug().Str("func", fn).Strs("queries", b.cache.Members(TagBlogModel)).Msg("post listings invalidated")
}

func (b *clientBlogService) Subscribe(username string) (<-chan struct{}, func()) {
	if username == "" {
		return b.cache.Subscribe(QueryKeyAll)
	}
	return b.cache.Subscribe(QueryKeyByUser(username))
}
