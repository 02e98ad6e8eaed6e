package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeflow/internal/client"
	"github.com/verte-zerg/typeflow/internal/config"
	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/stats"
)

const defaultLeaderboardLimit = 10

var (
	leaderboardDuration int
	leaderboardLimit    int
	leaderboardAPI      string
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top results for a duration",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().IntVar(&leaderboardDuration, "duration", config.DefaultDuration, "test length in seconds (60, 90 or 120)")
	cmd.Flags().IntVar(&leaderboardLimit, "limit", defaultLeaderboardLimit, "number of rows")
	cmd.Flags().StringVar(&leaderboardAPI, "api", config.DefaultAPIBase, "base URL of the text/result service")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "api", &leaderboardAPI, fileCfg.Practice.API)
	applyIntConfig(cmd, "duration", &leaderboardDuration, fileCfg.Practice.Duration)

	if !model.ValidDuration(leaderboardDuration) {
		return fmt.Errorf("--duration must be one of 60, 90, 120")
	}
	if leaderboardLimit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	entries, err := client.New(leaderboardAPI).FetchLeaderboard(ctx, leaderboardDuration, leaderboardLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	return stats.RenderLeaderboard(cmd.OutOrStdout(), leaderboardDuration, entries, terminalWidth())
}
