// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/twavp/api/health"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func TestStartAPIServer(t *testing.T) {
	url, closeFunc, err := StartAPIServer("127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}), 0)
	require.NoError(t, err)
	defer closeFunc()

	code, body := get(t, url+"/scores")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}

func TestStartMetricsServer(t *testing.T) {
	url, closeFunc, err := StartMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	defer closeFunc()

	// metrics are noop unless prometheus is initialized
	code, _ := get(t, url)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStartAdminServer(t *testing.T) {
	var (
		level   slog.LevelVar
		apiLogs atomic.Bool
	)
	url, closeFunc, err := StartAdminServer("127.0.0.1:0", &level, &apiLogs, health.New(nil, 0))
	require.NoError(t, err)
	defer closeFunc()

	code, body := get(t, url+"/loglevel")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"currentLevel":"info"}`, body)
}

func TestListenError(t *testing.T) {
	_, _, err := StartMetricsServer("256.0.0.1:bad")
	assert.Error(t, err)
}
