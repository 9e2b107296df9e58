package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/grievance-intel/internal/cli"
	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/service"
	"github.com/Veraticus/grievance-intel/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print recent grievances",
		Long: `Fetch every grievance from the backend and print it in backend order,
with the same priority, category and scheme details the interactive view shows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(settings)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), client, cmd.OutOrStdout(), settings.UI.Locale, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the records as JSON")

	return cmd
}

func runList(ctx context.Context, backend service.GrievanceBackend, w io.Writer, locale string, asJSON bool) error {
	grievances, err := backend.ListGrievances(ctx)
	if err != nil {
		return common.NewUserError("Could not load grievances", fmt.Errorf("%w: %w", common.ErrFetchFailed, err))
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(grievances); err != nil {
			return fmt.Errorf("failed to encode grievances: %w", err)
		}
		return nil
	}

	stats := viewmodel.BuildStats(grievances)
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n",
		cli.FormatTitle("Recent Grievances"),
		cli.SubtleStyle.Render(fmt.Sprintf("Total Grievances: %d   Clearance Rate: %s",
			stats.TotalGrievances, stats.ClearanceRate))); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cards := viewmodel.BuildList(grievances, locale)
	if len(cards) == 0 {
		if _, err := fmt.Fprintln(w, cli.InfoStyle.Render(viewmodel.EmptyListText)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	for _, card := range cards {
		if _, err := fmt.Fprintln(w, cli.RenderGrievance(card)); err != nil {
			return fmt.Errorf("failed to write grievance: %w", err)
		}
	}

	return nil
}
