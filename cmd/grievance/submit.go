package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/grievance-intel/internal/cli"
	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/Veraticus/grievance-intel/internal/service"
	"github.com/Veraticus/grievance-intel/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func submitCmd() *cobra.Command {
	var seed model.Draft

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a grievance",
		Long: `Submit a grievance for analysis. Fields not given as flags are asked for
on stdin. Both a title and a description are required.`,
		Example: `  grievance submit --title "Water shortage in Sector 4" --description "No water for 3 days"
  grievance submit --title "Streetlight out"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(settings)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := handler.HandleInterrupts(cmd.Context(), "Submission cancelled. Nothing was sent.")

			prompter := cli.NewDraftPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return runSubmit(ctx, client, prompter, cmd.OutOrStdout(), seed)
		},
	}

	cmd.Flags().StringVarP(&seed.Title, "title", "t", "", "short summary of the issue")
	cmd.Flags().StringVarP(&seed.Description, "description", "d", "", "the issue in detail")

	return cmd
}

func runSubmit(ctx context.Context, backend service.GrievanceBackend, prompter *cli.DraftPrompter, w io.Writer, seed model.Draft) error {
	draft, err := prompter.PromptDraft(ctx, seed)
	if err != nil {
		if common.IsValidation(err) {
			return common.NewUserError("Both a title and a description are required", err)
		}
		return err
	}

	if err := backend.CreateGrievance(ctx, draft); err != nil {
		return common.NewUserError("Could not submit grievance", fmt.Errorf("%w: %w", common.ErrSubmitFailed, err))
	}

	common.LogInfo("Grievance submitted", common.Fields{"title": draft.Title})

	if _, err := fmt.Fprintln(w, cli.FormatSuccess(viewmodel.SuccessText)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
