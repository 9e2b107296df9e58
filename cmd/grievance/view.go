package main

import (
	"log/slog"

	"github.com/Veraticus/grievance-intel/internal/tui"
	"github.com/Veraticus/grievance-intel/internal/tui/themes"
	"github.com/spf13/cobra"
)

func runView(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newClient(settings)
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithBackend(client),
		tui.WithTheme(themes.GetTheme(settings.UI.Theme)),
		tui.WithLocale(settings.UI.Locale),
		tui.WithSequenceGuard(settings.UI.SequenceGuard),
	}

	if cache := openCache(ctx, settings.Cache); cache != nil {
		defer closeCache(cache)
		opts = append(opts, tui.WithCache(cache))
	}

	slog.Info("Starting grievance view",
		"backend", client.BaseURL(),
		"theme", settings.UI.Theme,
		"locale", settings.UI.Locale)

	return tui.Run(ctx, opts...)
}
