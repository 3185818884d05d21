package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"course-recommender/internal/domain"
	"course-recommender/internal/subject"
)

func newNormalizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize SUBJECT...",
		Short: "Show the canonical subject tag for free text subjects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				app.printf("%s\t%s\n", raw, subject.Normalize(raw).Label())
			}
			return nil
		},
	}
}

func newSubjectsCmd(app *App) *cobra.Command {
	var showRules bool

	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List the canonical subject tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !showRules {
				for _, s := range domain.AllSubjects() {
					app.printf("%s\n", s.Label())
				}
				return nil
			}
			for _, r := range subject.DefaultRules {
				app.printf("%s\t%s\n", r.Tag.Label(), strings.Join(r.Keywords, ", "))
			}
			app.printf("%s\t(fallback)\n", domain.SubjectOther.Label())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showRules, "rules", false, "Also show the keywords mapping to each tag")
	return cmd
}
