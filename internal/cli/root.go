// Package cli implements the courserec command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"course-recommender/internal/catalog"
	"course-recommender/internal/config"
	"course-recommender/internal/logging"
	"course-recommender/internal/recommend"
)

// App carries what every command needs. Nil fields are filled from the
// --config file and environment before the command runs.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	Out    io.Writer

	configPath string
}

// NewRootCmd creates the top-level "courserec" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "courserec",
		Short:         "Content-based course recommender",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}
	root.PersistentFlags().StringVar(&app.configPath, "config", "", "YAML config file (default $"+config.PathEnvVar+" or ./courserec.yaml)")

	root.AddCommand(
		newRecommendCmd(app),
		newNormalizeCmd(app),
		newSubjectsCmd(app),
		newImportCmd(app),
		newBatchCmd(app),
		NewServeCmd(app),
	)
	return root
}

func (a *App) init() error {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Config == nil {
		var (
			cfg config.Config
			err error
		)
		if a.configPath != "" {
			cfg, err = config.LoadFile(a.configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		a.Config = &cfg
	}
	if a.Log == nil {
		l, err := logging.New(a.Config.Log.Level, a.Config.Log.Format)
		if err != nil {
			return err
		}
		a.Log = l
	}
	return nil
}

func (a *App) recommendOptions() recommend.Options {
	return recommend.Options{
		TopN:           a.Config.Recommend.TopN,
		CandidateWidth: a.Config.Recommend.CandidateWidth,
	}
}

// loadService builds the index from the configured catalog.
func (a *App) loadService(ctx context.Context) (*recommend.Service, catalog.Source, error) {
	src, err := catalog.Open(*a.Config, a.Log)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, a.Config.Catalog.Timeout)
	defer cancel()

	idx, err := catalog.LoadIndex(ctx, src, a.Log)
	if err != nil {
		return nil, nil, err
	}
	return recommend.NewService(idx, a.recommendOptions(), a.Log), src, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}
