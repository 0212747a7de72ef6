// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BlogModel is a blog post as returned by the server. The server owns the
// record; the client only holds cached copies of it.
type BlogModel struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogListResponse is the envelope around every post listing.
type BlogListResponse struct {
	Posts []BlogModel `json:"posts"`
}

// BlogCreateRequest is the body of POST posts/post/create.
type BlogCreateRequest struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

// BlogUpdateRequest is the body of PUT posts/post/update.
type BlogUpdateRequest struct {
	ID      string `json:"id" validate:"required"`
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

// BlogDeleteRequest identifies the post to delete. Callers usually fill it
// from a listed [BlogModel], so it may carry more than the server needs; only
// the fields returned by [BlogDeleteRequest.Payload] go on the wire.
type BlogDeleteRequest struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	Username string `json:"username,omitempty"`
}

// BlogDeletePayload is the exact body of DELETE posts/post/delete.
type BlogDeletePayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Payload narrows the request down to {id, title}.
func (r BlogDeleteRequest) Payload() BlogDeletePayload {
	return BlogDeletePayload{ID: r.ID, Title: r.Title}
}

// NewBlogDeleteRequest builds a delete request for a listed post.
func NewBlogDeleteRequest(post BlogModel) BlogDeleteRequest {
	return BlogDeleteRequest{
		ID:       post.ID,
		Title:    post.Title,
		Content:  post.Content,
		Username: post.Username,
	}
}

// BlogResponse is the success body of the post mutation endpoints.
type BlogResponse struct {
	Message string     `json:"message,omitempty"`
	Post    *BlogModel `json:"post,omitempty"`
}
