package main

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/zulandar/chalkline/internal/config"
	"github.com/zulandar/chalkline/internal/db"
)

func newDoctorCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and prerequisites",
		Long:  "Runs diagnostic checks: config, API keys, notify credentials, archive database, and Notion page id.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "chalkline.yaml", "path to Chalkline config file")
	return cmd
}

type checkResult struct {
	name   string
	status string // "PASS", "FAIL", "WARN"
	detail string
}

// notionPageIDPattern matches the dashed UUID form Notion page ids use.
var notionPageIDPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func runDoctor(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Chalkline Doctor")
	fmt.Fprintln(out, "================")

	var results []checkResult

	cfg, cfgResult := checkConfig(configPath)
	results = append(results, cfgResult)

	results = append(results, checkEnv("GEMINI_API_KEY", "FAIL"))
	results = append(results, checkEnv("NOTION_API_KEY", "FAIL"))

	if cfg != nil {
		results = append(results, checkNotifyCredentials(cfg))
		results = append(results, checkArchive(cfg))
		results = append(results, checkNotionPageID(cfg))
	}

	passed, failed, warned := 0, 0, 0
	for _, r := range results {
		printCheckResult(out, r)
		switch r.status {
		case "PASS":
			passed++
		case "FAIL":
			failed++
		case "WARN":
			warned++
		}
	}

	fmt.Fprintf(out, "\n%d passed, %d failed, %d warning\n", passed, failed, warned)

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func printCheckResult(out io.Writer, r checkResult) {
	fmt.Fprintf(out, "[%s] %s: %s\n", r.status, r.name, r.detail)
}

func checkConfig(path string) (*config.Config, checkResult) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, checkResult{"Config file", "FAIL", fmt.Sprintf("%s: %v", path, err)}
	}
	return cfg, checkResult{"Config file", "PASS", path}
}

func checkEnv(name, missingStatus string) checkResult {
	if os.Getenv(name) == "" {
		return checkResult{name, missingStatus, "not set"}
	}
	return checkResult{name, "PASS", "set"}
}

func checkNotifyCredentials(cfg *config.Config) checkResult {
	switch cfg.Notify.Platform {
	case "":
		return checkResult{"Notify", "PASS", "disabled"}
	case "slack":
		r := checkEnv("SLACK_BOT_TOKEN", "FAIL")
		r.name = "Notify (slack)"
		return r
	case "discord":
		r := checkEnv("DISCORD_BOT_TOKEN", "FAIL")
		r.name = "Notify (discord)"
		return r
	default:
		return checkResult{"Notify", "FAIL", fmt.Sprintf("unknown platform %q", cfg.Notify.Platform)}
	}
}

func checkArchive(cfg *config.Config) checkResult {
	gdb, err := db.Connect(cfg.Archive.Path)
	if err != nil {
		return checkResult{"Archive", "FAIL", err.Error()}
	}
	if err := db.Migrate(gdb); err != nil {
		return checkResult{"Archive", "FAIL", err.Error()}
	}
	return checkResult{"Archive", "PASS", cfg.Archive.Path}
}

func checkNotionPageID(cfg *config.Config) checkResult {
	id := cfg.Assignment.NotionPageID
	if !notionPageIDPattern.MatchString(id) {
		return checkResult{"Notion page id", "WARN", fmt.Sprintf("%q does not look like a page id", id)}
	}
	return checkResult{"Notion page id", "PASS", id}
}
