package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeflow/internal/config"
	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/stats"
	"github.com/verte-zerg/typeflow/internal/store"
	"github.com/verte-zerg/typeflow/internal/textfile"
)

var (
	textsDB       string
	textsDuration int
	textsInactive bool
)

func newTextsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texts",
		Short: "Manage prompt texts in the local database",
	}
	cmd.PersistentFlags().StringVar(&textsDB, "db", "", "SQLite database path (default: XDG data dir)")

	addCmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a prompt text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTextsAddCmd,
	}
	addCmd.Flags().IntVar(&textsDuration, "duration", config.DefaultDuration, "test length in seconds (60, 90 or 120)")
	addCmd.Flags().BoolVar(&textsInactive, "inactive", false, "store the text without serving it")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add every blank-line separated paragraph of a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTextsImportCmd,
	}
	importCmd.Flags().IntVar(&textsDuration, "duration", config.DefaultDuration, "test length in seconds (60, 90 or 120)")
	importCmd.Flags().BoolVar(&textsInactive, "inactive", false, "store the texts without serving them")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List prompt texts",
		Args:  cobra.NoArgs,
		RunE:  runTextsListCmd,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a prompt text",
		Args:  cobra.ExactArgs(1),
		RunE:  runTextsDeleteCmd,
	}

	cmd.AddCommand(addCmd, importCmd, listCmd, deleteCmd)
	return cmd
}

func openTextsStore(cmd *cobra.Command) (*store.Store, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return nil, err
	}
	applyStringConfig(cmd, "db", &textsDB, fileCfg.Server.DB)
	if textsDB == "" {
		textsDB = config.DefaultDBPath()
	}
	st, err := store.Open(textsDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runTextsAddCmd(cmd *cobra.Command, args []string) error {
	if !model.ValidDuration(textsDuration) {
		return fmt.Errorf("--duration must be one of 60, 90, 120")
	}
	content := textfile.Normalize(strings.Join(args, " "))
	if content == "" {
		return fmt.Errorf("content must not be empty")
	}
	st, err := openTextsStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	id, err := st.InsertText(context.Background(), model.Text{
		Duration: textsDuration,
		Content:  content,
		Active:   !textsInactive,
	})
	if err != nil {
		return fmt.Errorf("failed to add text: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added text %d (%ds)\n", id, textsDuration)
	return err
}

func runTextsImportCmd(cmd *cobra.Command, args []string) error {
	if !model.ValidDuration(textsDuration) {
		return fmt.Errorf("--duration must be one of 60, 90, 120")
	}
	paragraphs, err := textfile.LoadParagraphs(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	st, err := openTextsStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	for i, p := range paragraphs {
		if _, err := st.InsertText(ctx, model.Text{Duration: textsDuration, Content: p, Active: !textsInactive}); err != nil {
			return fmt.Errorf("failed to add paragraph %d: %w", i+1, err)
		}
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d texts (%ds)\n", len(paragraphs), textsDuration)
	return err
}

func runTextsListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openTextsStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	texts, err := st.ListTexts(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list texts: %w", err)
	}
	return stats.RenderTexts(cmd.OutOrStdout(), texts, terminalWidth())
}

func runTextsDeleteCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid text id %q", args[0])
	}
	st, err := openTextsStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.DeleteText(context.Background(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logErrln("Run: typeflow texts list")
			return fmt.Errorf("text %d not found", id)
		}
		return fmt.Errorf("failed to delete text: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted text %d\n", id)
	return err
}
