package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourusername/xdownload/internal/domain"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit    int
		platform string
		videoID  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			var records []*domain.HistoryRecord
			if videoID != "" {
				records, err = rt.Manager.VideoHistory(platform, videoID)
			} else {
				records, err = rt.Manager.History(platform, limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No downloads recorded.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tPLATFORM\tSTATUS\tDETAIL")
			for _, r := range records {
				status := color.GreenString("ok")
				detail := r.FilePath
				if !r.Success {
					status = color.RedString("%s", r.ErrorKind)
					detail = r.URL
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.ID[:8],
					r.CreatedAt.Format("2006-01-02 15:04"),
					r.Platform,
					status,
					truncate(detail, 60))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records")
	cmd.Flags().StringVar(&platform, "platform", "", "Only show records for this platform")
	cmd.Flags().StringVar(&videoID, "video", "", "Show every attempt at one post ID")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show download statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			stats, err := rt.Manager.Stats()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.Bold).Fprintln(out, "Download Statistics:")
			fmt.Fprintf(out, "  Total:     %d\n", stats.Total)
			fmt.Fprintf(out, "  Succeeded: %d\n", stats.Succeeded)
			fmt.Fprintf(out, "  Failed:    %d\n", stats.Failed)

			platforms := make([]string, 0, len(stats.ByPlatform))
			for p := range stats.ByPlatform {
				platforms = append(platforms, p)
			}
			sort.Strings(platforms)
			for _, p := range platforms {
				fmt.Fprintf(out, "  %-10s %d\n", p+":", stats.ByPlatform[p])
			}
			return nil
		},
	}
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
