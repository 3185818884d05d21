package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"course-recommender/internal/batch"
	"course-recommender/internal/export"
	"course-recommender/internal/sftpclient"
)

func newBatchCmd(app *App) *cobra.Command {
	var (
		gradesPath string
		format     string
		outDir     string
		compress   bool
		upload     bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Recommend for every student of a gradesheet and write a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("compress") {
				compress = app.Config.Batch.Compress
			}

			in, err := os.Open(gradesPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", gradesPath, err)
			}
			grades, err := batch.ReadGrades(in)
			in.Close()
			if err != nil {
				return err
			}

			svc, _, err := app.loadService(cmd.Context())
			if err != nil {
				return err
			}

			opts := batch.Options{
				Workers:  app.Config.Batch.Workers,
				TopN:     app.Config.Recommend.TopN,
				Format:   f,
				Compress: compress,
				OutDir:   outDir,
			}
			if upload {
				s := app.Config.SFTP
				opts.Upload = &sftpclient.Config{
					Host:                  s.Host,
					Port:                  s.Port,
					User:                  s.User,
					Pass:                  s.Pass,
					RemoteDir:             s.Dir,
					KnownHosts:            s.KnownHosts,
					InsecureIgnoreHostKey: s.InsecureIgnoreHostKey,
				}
			}

			path, err := batch.NewRunner(svc, opts, app.Log).Run(cmd.Context(), grades)
			if err != nil {
				return err
			}
			app.printf("wrote %d recommendations to %s\n", len(grades), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&gradesPath, "grades", "grades.csv", "Gradesheet CSV with student, subject and score columns")
	cmd.Flags().StringVar(&format, "format", "csv", "Report format: csv or json")
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory for the report")
	cmd.Flags().BoolVar(&compress, "compress", false, "Brotli-compress the report (default batch.compress)")
	cmd.Flags().BoolVar(&upload, "upload", false, "Upload the report with the sftp settings")
	return cmd
}
