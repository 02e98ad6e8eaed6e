package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeflow/internal/client"
	"github.com/verte-zerg/typeflow/internal/config"
	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/tui"
)

var (
	practiceDuration int
	practiceUser     string
	practiceAPI      string
	practiceTheme    string
)

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&practiceDuration, "duration", config.DefaultDuration, "test length in seconds (60, 90 or 120)")
	cmd.Flags().StringVar(&practiceUser, "user", "", "name shown on the leaderboard")
	cmd.Flags().StringVar(&practiceAPI, "api", config.DefaultAPIBase, "base URL of the text/result service")
	cmd.Flags().StringVar(&practiceTheme, "theme", config.DefaultTheme, "colour theme (dark or light)")
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration)
	applyStringConfig(cmd, "user", &practiceUser, fileCfg.Practice.User)
	applyStringConfig(cmd, "api", &practiceAPI, fileCfg.Practice.API)
	applyStringConfig(cmd, "theme", &practiceTheme, fileCfg.Practice.Theme)

	cfg := model.Config{
		Duration: practiceDuration,
		UserID:   practiceUser,
		APIBase:  practiceAPI,
		Theme:    practiceTheme,
	}
	if err := config.ValidatePractice(cfg); err != nil {
		return err
	}

	closeLog := setupFileLogger()
	defer closeLog()

	api := client.New(cfg.APIBase)
	reporter := client.NewReporter(api)
	m, err := tui.NewModel(cfg, tui.Deps{
		Texts:       api,
		Leaderboard: api,
		Reporter:    reporter,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	reporter.Wait()
	return nil
}
