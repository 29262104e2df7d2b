// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errBoom), http.StatusBadRequest, "boom"},
		{"bad gateway", BadGateway(errBoom), http.StatusBadGateway, "boom"},
		{"wrapped", fmt.Errorf("scores: %w", HTTPError(errBoom, http.StatusTeapot)), http.StatusTeapot, "scores: boom"},
		{"plain", errBoom, http.StatusInternalServerError, "boom"},
		{"no cause", HTTPError(nil, http.StatusNoContent), http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rr.Code)
			if tt.body == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			var body M
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.body, body["error"])
		})
	}
}

func TestHTTPErrorUnwrap(t *testing.T) {
	errBoom := errors.New("boom")
	assert.ErrorIs(t, BadRequest(errBoom), errBoom)
	assert.Equal(t, http.StatusBadGateway, StatusCode(fmt.Errorf("x: %w", BadGateway(errBoom))))
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"a":1,"b":2}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rr, M{"healthy": true}))
	assert.Equal(t, JSONContentType, rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"healthy":true}`, rr.Body.String())
}
