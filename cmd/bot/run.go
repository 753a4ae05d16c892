package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/palabras-bot/internal/config"
	"github.com/aliskhannn/palabras-bot/internal/delivery/telegram"
	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/infra/giphy"
	"github.com/aliskhannn/palabras-bot/internal/logger"
	"github.com/aliskhannn/palabras-bot/internal/repository"
	"github.com/aliskhannn/palabras-bot/internal/service"
	"github.com/aliskhannn/palabras-bot/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Telegram bot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBot(cmd.Context())
	},
}

func runBot(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wordRepo, err := repository.NewWordRepository(cfg.Catalog.Path, cfg.Catalog.ExpectedSize)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	catalog, err := wordRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	log.Info("catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("words", wordRepo.Size()),
	)

	kv, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("init bot: %w", err)
	}
	bot.Debug = cfg.Env != "production"
	log.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		log.Warn("failed to set bot commands", zap.Error(err))
	}

	rnd := service.NewTimeRandom()
	progress := repository.NewProgressStore(kv, log)

	game := service.NewGameService(catalog, progress, rnd, service.GameConfig{
		SkipLimit:           cfg.Game.SkipLimit,
		Distractors:         cfg.Game.Distractors,
		MultipleChoiceRatio: cfg.Game.MultipleChoiceRatio,
		HintRatio:           cfg.Game.HintRatio,
	}, log)

	provider, err := hintProvider(cfg, log)
	if err != nil {
		return err
	}
	tracker := service.NewHintTracker()
	hints := service.NewHintService(provider, tracker, rnd, log)

	prompts := storage.NewPromptStorage()
	pacer := telegram.NewPacer(cfg.Game.FeedbackDelay)

	handler := telegram.NewHandler(
		bot,
		log,
		game,
		hints,
		service.NewStudySheetExporter(),
		prompts,
		pacer,
		entities.DefaultMilestones(),
	)

	janitor := service.NewJanitor(cfg.Janitor.Schedule, cfg.Janitor.IdleTTL, map[string]service.Sweeper{
		"sessions": game,
		"hints":    tracker,
		"pacer":    pacer,
		"prompts":  prompts,
	}, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(gctx)
	})
	g.Go(func() error {
		return janitor.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		bot.StopReceivingUpdates()
		return nil
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped with error", zap.Error(err))
		return err
	}

	log.Info("shutdown complete")
	return nil
}

// hintProvider returns the Giphy client, or nil when hints are disabled.
func hintProvider(cfg *config.Config, log *zap.Logger) (service.HintProvider, error) {
	if !cfg.Giphy.Enabled() {
		log.Info("gif hints disabled")
		return nil, nil
	}

	client, err := giphy.NewClient(giphy.Config{
		APIKey:            cfg.Giphy.APIKey,
		BaseURL:           cfg.Giphy.BaseURL,
		Lang:              cfg.Giphy.Lang,
		Limit:             cfg.Giphy.Limit,
		Timeout:           cfg.Giphy.Timeout,
		RequestsPerSecond: cfg.Giphy.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("init giphy: %w", err)
	}
	return client, nil
}
