package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zulandar/chalkline/internal/config"
	"github.com/zulandar/chalkline/internal/db"
	"github.com/zulandar/chalkline/internal/models"
)

func newSubmissionsCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List archived submissions",
		Long:  "Lists sessions recorded in the local submission archive, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmissions(cmd, configPath, limit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "chalkline.yaml", "path to Chalkline config file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max submissions to list")
	return cmd
}

func runSubmissions(cmd *cobra.Command, configPath string, limit int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	gdb, err := db.Connect(cfg.Archive.Path)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}

	var subs []models.Submission
	if err := gdb.Order("created_at DESC").Limit(limit).Find(&subs).Error; err != nil {
		return fmt.Errorf("query submissions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(subs) == 0 {
		fmt.Fprintln(out, "No submissions recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SUBMITTED\tSTUDENT\tASSIGNMENT\tMSGS\tTRANSCRIPT\tASSESSMENT")
	for _, s := range subs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.StudentName,
			truncateTitle(s.AssignmentTitle, 40),
			s.MessageCount,
			s.TranscriptChars,
			s.AssessmentChars,
		)
	}
	return w.Flush()
}

func truncateTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
