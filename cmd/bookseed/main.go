package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"bookseed/config"
	"bookseed/db"
	"bookseed/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultEnvFile = ".env"

var errStepsFailed = errors.New("one or more steps failed")

type options struct {
	envFile string
	verbose bool
	log     *zap.SugaredLogger
}

// step is one stage of a run. Its error is logged and the run moves on.
type step struct {
	name string
	run  func(conn *gorm.DB, out io.Writer, log *zap.SugaredLogger) error
}

var (
	schemaStep = step{name: "schema", run: func(conn *gorm.DB, _ io.Writer, log *zap.SugaredLogger) error {
		if err := db.Bootstrap(conn); err != nil {
			return err
		}
		log.Infow("tables created", "tables", db.Tables())
		return nil
	}}

	seedStep = step{name: "seed", run: func(conn *gorm.DB, _ io.Writer, log *zap.SugaredLogger) error {
		counts, err := db.Seed(conn)
		for _, c := range counts {
			log.Infow("seed rows inserted", "table", c.Table, "inserted", c.Inserted, "skipped", int64(c.Offered)-c.Inserted)
		}
		return err
	}}

	inspectStep = step{name: "inspect", run: func(conn *gorm.DB, out io.Writer, _ *zap.SugaredLogger) error {
		r, err := db.Inspect(db.NewSQLStore(conn))
		// partial reports are still printed
		if werr := report.Write(out, r); werr != nil {
			return errors.Join(err, werr)
		}
		return err
	}}
)

func main() {
	if err := newRootCommand(&options{}).Execute(); err != nil {
		if !errors.Is(err, errStepsFailed) {
			fmt.Fprintf(os.Stderr, "bookseed: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookseed",
		Short: "Create the library schema, seed it and print every table",
		Long: "bookseed connects to the database named by DB_USER, DB_PASSWORD, DB_HOST and DB_NAME,\n" +
			"creates the publishers, authors, books and book_authors tables when absent,\n" +
			"inserts the seed rows (skipping rows that already exist) and prints up to five rows of every table.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.log != nil {
				return nil
			}
			log, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			opts.log = log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, schemaStep, seedStep, inspectStep)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", defaultEnvFile, "Path to an optional dotenv file with DB_* settings")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output and every SQL statement")

	for _, s := range []step{schemaStep, seedStep, inspectStep} {
		rootCmd.AddCommand(newStepCommand(opts, s))
	}
	return rootCmd
}

func newStepCommand(opts *options, s step) *cobra.Command {
	short := map[string]string{
		"schema":  "Create the tables that do not exist yet",
		"seed":    "Insert the seed rows, skipping existing keys",
		"inspect": "Print the columns and first rows of every table",
	}[s.name]
	return &cobra.Command{
		Use:   s.name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, s)
		},
	}
}

// run connects once and executes steps in order on the shared handle. A failed
// connection is logged and the steps still run, reporting their own errors.
func run(cmd *cobra.Command, opts *options, steps ...step) error {
	log := opts.log
	defer func() { _ = log.Sync() }()

	var failed []error
	var conn *gorm.DB

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		log.Errorw("error loading configuration", "error", err)
		failed = append(failed, fmt.Errorf("%w: %w", db.ErrConnect, err))
	} else {
		conn, err = db.Connect(cfg, log, sqlLogLevel(opts.verbose))
		if err != nil {
			log.Errorw("error connecting to the database", "error", err)
			failed = append(failed, err)
		}
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			log.Warnw("error closing the database", "error", err)
		}
	}()

	for _, s := range steps {
		log.Debugw("running step", "step", s.name)
		if err := s.run(conn, cmd.OutOrStdout(), log); err != nil {
			log.Errorw("step failed", "step", s.name, "error", err)
			failed = append(failed, err)
			continue
		}
		log.Infow("step completed", "step", s.name)
	}

	if len(failed) > 0 {
		return errors.Join(append([]error{errStepsFailed}, failed...)...)
	}
	return nil
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func sqlLogLevel(verbose bool) logger.LogLevel {
	if verbose {
		return logger.Info
	}
	return logger.Silent
}
