// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api assembles the score API router.
package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/twavp/api/health"
	"github.com/vechain/twavp/api/scores"
	"github.com/vechain/twavp/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger *atomic.Bool
	EnableMetrics   bool
	Timeout         time.Duration
}

// New return api router
func New(
	scorer scores.Scorer,
	networks scores.Networks,
	healthStatus *health.Health,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	scores.New(scorer, networks, opts.Timeout).
		Mount(router, "/scores")
	healthStatus.Mount(router, "/health")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	router.Use(requestIDMiddleware)

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = RequestLoggerMiddleware(logger, opts.EnableReqLogger)(handler)
	}

	return handler.ServeHTTP
}
