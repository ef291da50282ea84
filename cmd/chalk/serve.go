package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/zulandar/chalkline/internal/assess"
	"github.com/zulandar/chalkline/internal/config"
	"github.com/zulandar/chalkline/internal/db"
	"github.com/zulandar/chalkline/internal/llm"
	"github.com/zulandar/chalkline/internal/models"
	"github.com/zulandar/chalkline/internal/notify"
	"github.com/zulandar/chalkline/internal/notion"
	"github.com/zulandar/chalkline/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tutoring session server",
		Long:  "Serves the browser chat UI, the streaming tutor endpoint, and the submission endpoint.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "chalkline.yaml", "path to Chalkline config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override the configured port")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	notionKey := os.Getenv("NOTION_API_KEY")
	if notionKey == "" {
		return fmt.Errorf("NOTION_API_KEY is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	model, err := llm.NewGemini(ctx, geminiKey, cfg.Model.Name)
	if err != nil {
		return err
	}
	defer model.Close()

	gdb, err := db.Connect(cfg.Archive.Path)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}

	notifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	pipeline := assess.New(assess.Opts{
		LLM:        model,
		Saver:      notion.New(notionKey),
		Archive:    gdb,
		Notifier:   notifier,
		Assignment: cfg.Assignment,
		MaxTokens:  cfg.Model.AssessMaxTokens,
	})

	if cfg.Archive.RetentionDays > 0 {
		sweeper, err := startSweep(gdb, cfg.Archive)
		if err != nil {
			return err
		}
		defer sweeper.Stop()
	}

	return server.Start(ctx, server.StartOpts{
		Config:   cfg,
		LLM:      model,
		Pipeline: pipeline,
		Out:      cmd.OutOrStdout(),
	})
}

// buildNotifier creates the configured submission notifier, or nil when
// notifications are disabled.
func buildNotifier(cfg *config.Config) (notify.Notifier, error) {
	switch cfg.Notify.Platform {
	case "":
		return nil, nil
	case "slack":
		return notify.NewSlack(notify.SlackOpts{
			BotToken: os.Getenv("SLACK_BOT_TOKEN"),
			Channel:  cfg.Notify.Channel,
		})
	case "discord":
		return notify.NewDiscord(notify.DiscordOpts{
			BotToken: os.Getenv("DISCORD_BOT_TOKEN"),
			Channel:  cfg.Notify.Channel,
		})
	default:
		return nil, fmt.Errorf("unknown notify platform %q", cfg.Notify.Platform)
	}
}

// startSweep schedules the retention sweep that prunes archived
// submissions past the configured age.
func startSweep(gdb *gorm.DB, cfg config.ArchiveConfig) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(cfg.SweepSchedule, func() {
		cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
		res := gdb.Where("created_at < ?", cutoff).Delete(&models.Submission{})
		if res.Error != nil {
			log.Printf("sweep: prune submissions: %v", res.Error)
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("sweep: pruned %d submission(s) older than %d days", res.RowsAffected, cfg.RetentionDays)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", cfg.SweepSchedule, err)
	}
	c.Start()
	return c, nil
}
