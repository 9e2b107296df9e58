package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/grievance-intel/internal/model"
)

// DraftPrompter asks for the grievance fields the caller did not supply.
type DraftPrompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewDraftPrompter creates a prompter reading lines from reader.
func NewDraftPrompter(reader io.Reader, writer io.Writer) *DraftPrompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &DraftPrompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// PromptDraft fills the empty fields of seed. Blank answers are asked again
// until input ends. The result is validated before it is returned.
func (p *DraftPrompter) PromptDraft(ctx context.Context, seed model.Draft) (model.Draft, error) {
	draft := seed

	if strings.TrimSpace(draft.Title) == "" {
		title, err := p.ask(ctx, "Title (e.g., Water shortage in Sector 4)")
		if err != nil {
			return draft, err
		}
		draft.Title = title
	}

	if strings.TrimSpace(draft.Description) == "" {
		description, err := p.ask(ctx, "Describe the issue in detail")
		if err != nil {
			return draft, err
		}
		draft.Description = description
	}

	if err := draft.Validate(); err != nil {
		return draft, err
	}
	return draft, nil
}

func (p *DraftPrompter) ask(ctx context.Context, prompt string) (string, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if line != "" {
			return line, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", nil
			}
			return "", err
		}

		if _, err := fmt.Fprintln(p.writer, FormatWarning("This field is required.")); err != nil {
			return "", fmt.Errorf("failed to write warning: %w", err)
		}
	}
}
