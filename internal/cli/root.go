// Package cli implements the task-analyzer CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/rcliao/task-analyzer/internal/config"
	"github.com/rcliao/task-analyzer/internal/logging"
	"github.com/rcliao/task-analyzer/internal/store"
	"github.com/rcliao/task-analyzer/internal/tasks"
)

// Output formats for --format.
const (
	formatJSON = "json"
	formatText = "text"
)

type options struct {
	configPath string
	dbPath     string
	backend    string
	apiURL     string
	format     string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "task-analyzer",
		Short:         "Track tasks locally and rank them with a scoring service",
		Long:          "Build a task list, keep it on disk, and send it to the task scoring service for prioritization.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "Config file (default: $TASK_ANALYZER_CONFIG or ~/.task-analyzer/config.yaml)")
	root.PersistentFlags().StringVarP(&o.dbPath, "db", "d", "", "Storage path (default: $TASK_ANALYZER_DB or ~/.task-analyzer/tasks.db)")
	root.PersistentFlags().StringVar(&o.backend, "backend", "", "Storage backend: sqlite or json")
	root.PersistentFlags().StringVar(&o.apiURL, "api", "", "Scoring service base URL")
	root.PersistentFlags().StringVarP(&o.format, "format", "f", formatJSON, "Output format: json or text")

	root.AddCommand(
		newAddCmd(o),
		newListCmd(o),
		newRmCmd(o),
		newClearCmd(o),
		newImportCmd(o),
		newExportCmd(o),
		newDedupeCmd(o),
		newAnalyzeCmd(o),
		newStatsCmd(o),
		newStrategiesCmd(o),
		newSampleCmd(o),
	)
	return root
}

// session is everything one command invocation works with.
type session struct {
	cfg     config.Config
	log     *slog.Logger
	backend store.Backend
	tasks   *tasks.Store
}

func (o *options) loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	cfg.Override(o.backend, o.dbPath, o.apiURL)
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	if o.format != formatJSON && o.format != formatText {
		return cfg, nil, zerr.With(config.ErrInvalidConfig, "format", o.format)
	}
	return cfg, logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format), nil
}

func (o *options) openSession(cmd *cobra.Command) (*session, error) {
	cfg, log, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	backend, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, zerr.Wrap(err, "open store")
	}
	st, err := tasks.Open(cmd.Context(), store.NewPersister(backend, log), log)
	if err != nil {
		backend.Close()
		return nil, zerr.Wrap(err, "load tasks")
	}
	return &session{cfg: cfg, log: log, backend: backend, tasks: st}, nil
}

func (s *session) Close() error {
	return s.backend.Close()
}

// warnUnsaved tells the user the last write failed. The command still
// succeeds; the change is only lost when the process exits.
func (s *session) warnUnsaved(cmd *cobra.Command) {
	if err := s.tasks.SaveErr(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: changes were not saved: %v\n", err)
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
