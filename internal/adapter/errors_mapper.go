// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-blog-client/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return &APIError{
		StatusCode: resp.StatusCode(),
		Response:   parseErrorBody(resp.StatusCode(), resp.Body()),
	}
}

// parseErrorBody decodes a {status, message, error} body. Bodies that are
// not such JSON objects become the message verbatim (trimmed).
func parseErrorBody(statusCode int, body []byte) models.ErrorResponse {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && (errResp.Message != "" || errResp.Error != "") {
		if errResp.Message == "" {
			errResp.Message = errResp.Error
		}
		if errResp.Status == 0 {
			errResp.Status = statusCode
		}
		return errResp
	}

	return models.ErrorResponse{
		Status:  statusCode,
		Message: strings.TrimSpace(string(body)),
	}
}
