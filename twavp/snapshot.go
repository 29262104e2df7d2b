// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Snapshot is the destination chain block an evaluation is anchored to.
// The zero value is Latest.
type Snapshot struct {
	block    uint64
	explicit bool
}

// Latest evaluates at the current head of both chains.
var Latest = Snapshot{}

// AtBlock evaluates at destination block n.
func AtBlock(n uint64) Snapshot {
	return Snapshot{block: n, explicit: true}
}

// IsLatest reports whether s refers to the chain heads.
func (s Snapshot) IsLatest() bool { return !s.explicit }

// Block returns the explicit block number, if any.
func (s Snapshot) Block() (uint64, bool) { return s.block, s.explicit }

func (s Snapshot) String() string {
	if !s.explicit {
		return "latest"
	}
	return strconv.FormatUint(s.block, 10)
}

// ParseSnapshot accepts "latest", an empty string or a decimal block number.
func ParseSnapshot(s string) (Snapshot, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "latest") {
		return Latest, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Snapshot{}, errorf(ErrConfig, "invalid snapshot %q", s)
	}
	return AtBlock(n), nil
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	if !s.explicit {
		return []byte(`"latest"`), nil
	}
	return strconv.AppendUint(nil, s.block, 10), nil
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Latest
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		parsed, err := ParseSnapshot(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return errorf(ErrConfig, "invalid snapshot %s", data)
	}
	*s = AtBlock(n)
	return nil
}
