// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package scores serves strategy evaluations over HTTP.
package scores

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/twavp/api/utils"
	"github.com/vechain/twavp/provider"
	"github.com/vechain/twavp/twavp"
)

// Scorer evaluates voting weights. *twavp.Strategy satisfies it.
type Scorer interface {
	Score(
		ctx context.Context,
		space string,
		dest twavp.Chain,
		addresses []string,
		opts *twavp.Options,
		snapshot twavp.Snapshot,
	) (map[string]float64, error)
}

// Networks resolves a chain id. *provider.Registry satisfies it.
type Networks interface {
	Chain(ctx context.Context, id string) (twavp.Chain, error)
}

type Scores struct {
	scorer   Scorer
	networks Networks
	timeout  time.Duration
}

// New creates the handler. A zero timeout leaves the request context as is.
func New(scorer Scorer, networks Networks, timeout time.Duration) *Scores {
	return &Scores{
		scorer:   scorer,
		networks: networks,
		timeout:  timeout,
	}
}

func (s *Scores) handleScore(w http.ResponseWriter, req *http.Request) error {
	var body Request
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	body.Network = strings.TrimSpace(body.Network)
	if body.Network == "" {
		return utils.BadRequest(errors.New("network: must be set"))
	}
	if len(body.Options) == 0 {
		return utils.BadRequest(errors.New("options: must be set"))
	}
	opts, err := twavp.ParseOptions(body.Options)
	if err != nil {
		return utils.BadRequest(err)
	}
	if err := opts.Validate(); err != nil {
		return utils.BadRequest(err)
	}

	ctx := req.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	dest, err := s.networks.Chain(ctx, body.Network)
	if err != nil {
		if errors.Is(err, provider.ErrUnknownNetwork) {
			return utils.BadRequest(err)
		}
		return utils.BadGateway(err)
	}

	scores, err := s.scorer.Score(ctx, body.Space, dest, body.Addresses, opts, body.Snapshot)
	if err != nil {
		if errors.Is(err, twavp.ErrConfig) {
			return utils.BadRequest(err)
		}
		return utils.BadGateway(err)
	}
	return utils.WriteJSON(w, Response{Scores: scores})
}

func (s *Scores) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("scores_post").
		HandlerFunc(utils.WrapHandlerFunc(s.handleScore))
}
