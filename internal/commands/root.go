package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/observability"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Campus job board",
	Long: `Campus job board: students browse and apply to jobs, admins post jobs
and review applications.

Configuration comes from the environment, optionally through a .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every subcommand needs before doing its own work.
type env struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := observability.NewLogger(cfg.Log)
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
