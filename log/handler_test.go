// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))

	l.Info("samples fetched", "block", uint64(949600), "total", uint256.NewInt(1000), "supply", big.NewInt(500))

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO  ["), line)
	assert.Contains(t, line, "samples fetched")
	assert.Contains(t, line, "block=949600")
	assert.Contains(t, line, "total=1000")
	assert.Contains(t, line, "supply=500")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestTerminalHandlerQuotesValues(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))

	l.Warn("lookup failed", "err", "no block found")
	assert.Contains(t, out.String(), `err="no block found"`)
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))

	l.Debug("batch", "size", 3, "total", uint256.NewInt(42))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "debug", rec["lvl"])
	assert.Equal(t, "batch", rec["msg"])
	assert.Equal(t, "42", rec["total"])
	assert.Contains(t, rec, "t")
}

func TestLevelFiltering(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	lvl.Set(slog.LevelInfo)

	h, err := NewFormatHandler(FormatLogfmt, out, &lvl, false)
	require.NoError(t, err)
	l := NewLogger(h)

	l.Debug("hidden")
	assert.Empty(t, out.String())

	l.Info("shown", "k", "v")
	assert.Contains(t, out.String(), "lvl=info")
	assert.Contains(t, out.String(), "k=v")

	_, err = NewFormatHandler("xml", out, &lvl, false)
	assert.Error(t, err)
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(LegacyLevelCrit))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, LevelTrace, FromLegacyLevel(LegacyLevelTrace))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, "warn", LevelString(slog.LevelWarn))
}

func TestWithContextFollowsRoot(t *testing.T) {
	pkgLogger := WithContext("pkg", "test")

	out := new(bytes.Buffer)
	prev := Root()
	SetDefault(NewLogger(NewTerminalHandler(out, false)))
	t.Cleanup(func() { SetDefault(prev) })

	pkgLogger.Info("after root set", "n", 1)
	assert.Contains(t, out.String(), "pkg=test")
	assert.Contains(t, out.String(), "n=1")
}
