package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"course-recommender/internal/recommend"
)

func newRecommendCmd(app *App) *cobra.Command {
	var (
		subjects     []string
		score        string
		topN         int
		canonicalize bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend courses for preferred subjects and a proficiency score",
		Example: `  courserec recommend --subject "computer science" --score 62
  courserec recommend -s health -s "data science" --score abc --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(subjects) == 0 {
				return fmt.Errorf("at least one --subject is required")
			}
			if !cmd.Flags().Changed("top") {
				topN = app.Config.Recommend.TopN
			}

			svc, _, err := app.loadService(cmd.Context())
			if err != nil {
				return err
			}
			res := svc.Recommend(recommend.Request{
				Subjects:     subjects,
				Score:        recommend.ScoreFromText(score),
				TopN:         topN,
				Canonicalize: canonicalize,
			})

			if asJSON {
				enc := json.NewEncoder(app.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printResult(app, res)
		},
	}

	cmd.Flags().StringArrayVarP(&subjects, "subject", "s", nil, "Preferred subject (repeatable)")
	cmd.Flags().StringVar(&score, "score", "", "Proficiency score 0-100; non-numeric means beginner")
	cmd.Flags().IntVarP(&topN, "top", "n", 0, "Number of most similar courses to consider")
	cmd.Flags().BoolVar(&canonicalize, "canonicalize", false, "Map subjects to their canonical tag before ranking")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printResult(app *App, res recommend.Result) error {
	score := "n/a"
	if res.Score != nil {
		score = strconv.FormatFloat(*res.Score, 'f', -1, 64)
	}
	app.printf("Difficulty: %s (score %s)\n", res.Band, score)
	if len(res.Courses) == 0 {
		app.printf("No courses match this difficulty.\n")
		return nil
	}

	tw := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCOURSE\tSUBJECT\tLEVEL\tRATING\tLINK")
	for i, c := range res.Courses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, c.Name, c.Subject.Label(), c.Level, strconv.FormatFloat(c.Rating, 'f', -1, 64), c.Link)
	}
	return tw.Flush()
}
