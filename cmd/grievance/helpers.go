package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/grievance-intel/internal/api"
	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/config"
	"github.com/Veraticus/grievance-intel/internal/service"
	"github.com/Veraticus/grievance-intel/internal/storage"
)

// newClient builds the backend client from settings.
func newClient(s config.Settings) (*api.Client, error) {
	client, err := api.NewClient(s.API.BaseURL, api.WithTimeout(s.API.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// openCache opens the snapshot cache when it is enabled. A cache that cannot
// be opened is logged and skipped.
func openCache(ctx context.Context, s config.CacheSettings) service.SnapshotCache {
	if !s.Enabled {
		return nil
	}

	cache, err := storage.Open(ctx, s.Path)
	if err != nil {
		common.LogError(fmt.Errorf("%w: %w", common.ErrCacheUnavailable, err),
			"Continuing without snapshot cache", common.Fields{"path": s.Path})
		return nil
	}

	slog.Debug("Opened snapshot cache", "path", cache.Path())
	return cache
}

func closeCache(cache service.SnapshotCache) {
	if err := cache.Close(); err != nil {
		slog.Error("failed to close snapshot cache", "error", err)
	}
}
