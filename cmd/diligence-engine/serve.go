// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/diligence-engine/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rankings, scoring and the watchlist over HTTP",
	Long: `Serve starts the HTTP API on server.addr. The feed is fetched on the
first request and shared by every concurrent caller; POST /api/v1/refresh
discards it so the next request fetches again.

The watchlist routes use the local database at store.path. If it cannot be
opened the server still starts and those routes answer 503.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		appConfig.Server.Addr = addr
	}
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	cache, pipeline, err := newCache()
	if err != nil {
		return err
	}

	var watch api.Watchlist
	st, err := openStore()
	if err != nil {
		logger.WithError(err).Warn("store unavailable, watchlist disabled")
	} else {
		defer st.Close()
		watch = st
	}

	ctx, stop := signalContext()
	defer stop()

	if appConfig.Feed.URL == "" {
		logger.Warn("feed.url is not set, molecule routes will fail until it is configured")
	}
	return api.NewServer(appConfig.Server, cache, pipeline, watch, logger).Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")

	rootCmd.AddCommand(serveCmd)
}
