// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-client/models"
)

func TestValidateRequest_NotBlankRegistered(t *testing.T) {
	err := validateRequest(models.LoginRequest{Identifier: " \t", Secret: "s"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorContains(t, err, "identifier(notblank)")
}

func TestValidateRequest_PresenceOnly(t *testing.T) {
	tests := []struct {
		name string
		req  any
	}{
		{"short register fields", models.RegisterRequest{Username: "bo", Email: "b", Password: "1"}},
		{"long title", models.BlogCreateRequest{Title: strings.Repeat("a", 201), Content: "c"}},
		{"long update title", models.BlogUpdateRequest{ID: "p1", Title: strings.Repeat("a", 500), Content: "c"}},
		{"delete without title", models.BlogDeleteRequest{ID: "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, validateRequest(tt.req))
		})
	}
}

func TestValidateRequest_ReportsJSONFieldNames(t *testing.T) {
	err := validateRequest(models.BlogUpdateRequest{Title: "", Content: "c"})

	require.Error(t, err)
	assert.ErrorContains(t, err, "id(required)")
	assert.ErrorContains(t, err, "title(notblank)")
}
