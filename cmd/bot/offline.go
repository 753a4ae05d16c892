package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/config"
	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/logger"
	"github.com/aliskhannn/palabras-bot/internal/repository"
	"github.com/aliskhannn/palabras-bot/internal/service"
)

const offlineTimeout = 30 * time.Second

var (
	sheetUserID int64
	sheetMode   string
	sheetOut    string

	resetUserID int64
	resetMode   string
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Write the study sheet of a player to a file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode, err := entities.ParseMode(sheetMode)
		if err != nil {
			return err
		}

		return withProgressStore(cmd.Context(), func(ctx context.Context, store *repository.ProgressStore, log *zap.Logger) error {
			snapshot := store.Load(ctx, sheetUserID).Snapshot(mode)

			sheet, err := service.NewStudySheetExporter().Export(snapshot.Missed, mode)
			if err != nil {
				return err
			}

			out := sheetOut
			if out == "" {
				out = sheet.FileName
			}
			if err := os.WriteFile(out, sheet.Content, 0o644); err != nil {
				return fmt.Errorf("write study sheet: %w", err)
			}

			log.Info("study sheet written",
				zap.Int64("user_id", sheetUserID),
				zap.String("mode", string(mode)),
				zap.Int("words", sheet.Words),
				zap.String("path", out),
			)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the progress of a player in one mode",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode, err := entities.ParseMode(resetMode)
		if err != nil {
			return err
		}

		return withProgressStore(cmd.Context(), func(ctx context.Context, store *repository.ProgressStore, log *zap.Logger) error {
			if err := store.Clear(ctx, resetUserID, mode); err != nil {
				return fmt.Errorf("reset progress: %w", err)
			}

			log.Info("progress reset",
				zap.Int64("user_id", resetUserID),
				zap.String("mode", string(mode)),
			)
			return nil
		})
	},
}

func init() {
	sheetCmd.Flags().Int64Var(&sheetUserID, "user", 0, "Telegram user ID")
	sheetCmd.Flags().StringVar(&sheetMode, "mode", string(entities.ModeSpanishToEnglish), "game mode (es-en or en-es)")
	sheetCmd.Flags().StringVar(&sheetOut, "out", "", "output file, defaults to the sheet name")
	_ = sheetCmd.MarkFlagRequired("user")

	resetCmd.Flags().Int64Var(&resetUserID, "user", 0, "Telegram user ID")
	resetCmd.Flags().StringVar(&resetMode, "mode", "", "game mode (es-en or en-es)")
	_ = resetCmd.MarkFlagRequired("user")
	_ = resetCmd.MarkFlagRequired("mode")
}

// withProgressStore opens the configured storage for a one-off command.
func withProgressStore(parent context.Context, fn func(ctx context.Context, store *repository.ProgressStore, log *zap.Logger) error) error {
	cfg, err := config.LoadOffline()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(parent, offlineTimeout)
	defer cancel()

	kv, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(ctx, repository.NewProgressStore(kv, log), log)
}
