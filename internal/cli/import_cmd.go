package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"course-recommender/internal/catalog"
	"course-recommender/internal/corpus"
	"course-recommender/internal/store"
)

func newImportCmd(app *App) *cobra.Command {
	var csvPath, dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a course CSV into the SQLite catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" {
				csvPath = app.Config.Catalog.Path
			}
			if dbPath == "" {
				dbPath = app.Config.Catalog.DBPath
			}

			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", csvPath, err)
			}
			defer f.Close()

			records, err := catalog.ReadCSV(f)
			if err != nil {
				return err
			}
			// refuse catalogs the index could not be built from
			if _, err := corpus.Build(records); err != nil {
				return err
			}

			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			current, err := db.ListCourses(cmd.Context())
			if err != nil {
				return err
			}
			ch := catalog.Diff(current, records)

			if err := db.ReplaceCourses(cmd.Context(), records); err != nil {
				return err
			}
			app.Log.Info("catalog imported",
				zap.String("csv", csvPath),
				zap.String("db", dbPath),
				zap.Int("courses", len(records)),
				zap.Int("created", len(ch.Create)),
				zap.Int("updated", len(ch.Update)),
				zap.Int("deleted", len(ch.Delete)),
			)
			app.printf("imported %d courses into %s (%d new, %d changed, %d removed)\n",
				len(records), dbPath, len(ch.Create), len(ch.Update), len(ch.Delete))
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "Course CSV (default catalog.path)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite catalog (default catalog.db_path)")
	return cmd
}
