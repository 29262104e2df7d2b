// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package scores

import (
	"encoding/json"

	"github.com/vechain/twavp/twavp"
)

// Request is the body of a score evaluation.
type Request struct {
	Space     string          `json:"space"`
	Network   string          `json:"network"`
	Snapshot  twavp.Snapshot  `json:"snapshot"`
	Addresses []string        `json:"addresses"`
	Options   json.RawMessage `json:"options"`
}

// Response maps checksummed addresses to voting weights.
type Response struct {
	Scores map[string]float64 `json:"scores"`
}
