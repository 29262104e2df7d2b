// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import (
	"errors"
	"fmt"
)

// Every error returned by Score wraps exactly one of these.
var (
	// ErrConfig reports invalid options or inputs. It is raised before any network activity.
	ErrConfig = errors.New("configuration error")
	// ErrExternalLookup reports a failed block number, header or block finder lookup.
	ErrExternalLookup = errors.New("external lookup failure")
	// ErrBatchRead reports a failed or malformed batched contract read.
	ErrBatchRead = errors.New("batch read failure")
)

func errorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", kind, fmt.Errorf(format, args...))
}
