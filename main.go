package main

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/triplea-rent/feedbackbot/pkg/bot"
	"github.com/triplea-rent/feedbackbot/pkg/bot/telegramadapter"
	"github.com/triplea-rent/feedbackbot/pkg/config"
	"github.com/triplea-rent/feedbackbot/pkg/gateway"
	"github.com/triplea-rent/feedbackbot/pkg/i18n"
	"github.com/triplea-rent/feedbackbot/pkg/report"
	"github.com/triplea-rent/feedbackbot/pkg/state"
	"github.com/triplea-rent/feedbackbot/pkg/survey"
)

func main() {
	log := logrus.New()
	cfg := config.FromEnv(log)
	configureLogging(log, cfg)
	log.WithField("config", cfg.String()).Info("starting partner feedback bot")

	table := i18n.NewTable(cfg.DefaultLocale)
	if cfg.LocalesFile != "" {
		if err := table.LoadFile(cfg.LocalesFile); err != nil {
			log.WithError(err).Warn("failed to load locales file, using built-ins")
		}
	}
	locales := i18n.NewStore(table.Default())
	sessions := state.NewStore(survey.NewMachine, log)

	// Missing credentials degrade to a webhook endpoint that drops events,
	// rather than refusing to start.
	handle := degradedHandler(log)
	if cfg.BotToken != "" {
		client, err := bot.NewClient(cfg.BotToken, log)
		if err != nil {
			log.WithError(err).Error("telegram client unavailable, serving in degraded mode")
		} else {
			port, err := telegramadapter.New(client, log)
			if err != nil {
				log.WithError(err).Error("telegram adapter unavailable, serving in degraded mode")
			} else {
				deliverer := report.NewDeliverer(port, cfg.GroupChatID, cfg.Admins, log)
				handler := survey.NewHandler(port, table, locales, sessions, deliverer, log)
				handle = handler.HandleUpdate

				if cfg.WebhookURL != "" {
					if err := client.RegisterWebhook(cfg.WebhookURL, cfg.WebhookSecret); err != nil {
						log.WithError(err).Error("failed to register webhook")
					} else {
						log.WithField("url", cfg.WebhookURL).Info("webhook registered")
					}
				}
			}
		}
	}

	srv := gateway.New(cfg.WebhookSecret, handle, log)
	if err := srv.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("gateway stopped")
	}
}

func degradedHandler(log logrus.FieldLogger) gateway.UpdateHandler {
	return func(ctx context.Context, update tgbotapi.Update) {
		log.WithField("update_id", update.UpdateID).Warn("dropping update: bot client not configured")
	}
}

func configureLogging(log *logrus.Logger, cfg *config.Config) {
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}
