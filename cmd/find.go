package cmd

import (
	"fmt"
	"strings"

	"github.com/hack-pad/hackpadfs"
	"github.com/spf13/cobra"

	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/passage"
)

func newFindCmd(app *app) *cobra.Command {
	var topK int
	var inArchive, exact bool
	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Find passages similar to a query across all project drafts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if exact {
				return findExact(cmd, app, args[0])
			}
			if inArchive {
				return findInArchive(cmd, app, args[0], topK)
			}

			// The index is rebuilt from current drafts on every run so
			// results never reference deleted or stale paragraphs.
			idx, err := rebuildIndex(app)
			if err != nil {
				return err
			}

			for i, entry := range idx.Search(args[0], topK) {
				p, err := app.state.Project(entry.ProjectID)
				title := entry.ProjectID
				if err == nil {
					title = p.Title
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] %s\n", i+1, title, entry.Text)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&topK, "top", "k", 5, "number of passages to return")
	cmd.Flags().BoolVar(&inArchive, "archive", false, "search the long-term sample archive instead of drafts")
	cmd.Flags().BoolVar(&exact, "text", false, "substring search in the active project's draft and story bible")
	return cmd
}

// findExact reports which parts of the active project contain the term,
// case-insensitively: the draft, then each story bible section in order.
func findExact(cmd *cobra.Command, app *app, term string) error {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return fmt.Errorf("empty search term")
	}
	p, err := app.state.Current()
	if err != nil {
		return err
	}

	var results []string
	if strings.Contains(strings.ToLower(p.Draft), needle) {
		results = append(results, "found in draft")
	}
	for _, section := range state.StoryBibleSections {
		if content := p.StoryBible[section]; content != "" &&
			strings.Contains(strings.ToLower(content), needle) {
			results = append(results, "found in "+section)
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no results found")
		return nil
	}
	for _, r := range results {
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	return nil
}

func rebuildIndex(app *app) (*passage.Index, error) {
	if err := removeIfExists(app); err != nil {
		return nil, err
	}
	idx, err := passage.NewIndex(app.fs, app.passagePath)
	if err != nil {
		return nil, fmt.Errorf("open passage index: %w", err)
	}
	for _, p := range app.state.Projects {
		idx.AddDraft(p.ID, p.Draft)
	}
	if err := idx.Save(); err != nil {
		return nil, fmt.Errorf("save passage index: %w", err)
	}
	return idx, nil
}

func removeIfExists(app *app) error {
	if _, err := hackpadfs.Stat(app.fs, app.passagePath); err != nil {
		return nil
	}
	return hackpadfs.Remove(app.fs, app.passagePath)
}

func findInArchive(cmd *cobra.Command, app *app, query string, topK int) error {
	if app.archive == nil {
		return fmt.Errorf("sample archive is disabled")
	}
	matches, err := app.archive.Similar(query, topK)
	if err != nil {
		return err
	}
	for i, m := range matches {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s/%s] %s\n", i+1, m.Lane, m.Source, m.Text)
	}
	return nil
}
