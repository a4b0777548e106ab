package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config is the env-driven configuration surface of the bot.
type Config struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string
	ListenAddr    string

	GroupChatID int64
	Admins      []int64

	DefaultLocale string
	LocalesFile   string

	LogLevel  string
	LogFormat string
}

// FromEnv reads configuration from the environment. Missing mandatory
// values are reported as warnings and the process keeps running in a
// degraded state.
func FromEnv(log logrus.FieldLogger) *Config {
	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		WebhookURL:    os.Getenv("WEBHOOK_URL"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		ListenAddr:    envOr("LISTEN_ADDR", ":10000"),
		DefaultLocale: strings.ToLower(envOr("LOCALE", "ru")),
		LocalesFile:   os.Getenv("LOCALES_FILE"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "text"),
	}

	if raw := strings.TrimSpace(os.Getenv("GROUP_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.WithField("value", raw).Warn("invalid GROUP_CHAT_ID, ignoring")
		} else {
			cfg.GroupChatID = id
		}
	}

	cfg.Admins = parseAdmins(os.Getenv("ADMINS"), log)

	for _, w := range cfg.MissingMandatory() {
		log.Warnf("missing required env var: %s", w)
	}

	return cfg
}

// MissingMandatory lists the mandatory settings that are absent.
func (c *Config) MissingMandatory() []string {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if c.WebhookURL == "" {
		missing = append(missing, "WEBHOOK_URL")
	}
	if c.GroupChatID == 0 {
		missing = append(missing, "GROUP_CHAT_ID")
	}
	return missing
}

func (c *Config) String() string {
	return fmt.Sprintf("webhook=%s group=%d admins=%d locale=%s addr=%s",
		c.WebhookURL, c.GroupChatID, len(c.Admins), c.DefaultLocale, c.ListenAddr)
}

func parseAdmins(raw string, log logrus.FieldLogger) []int64 {
	var admins []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.WithField("value", part).Warn("invalid admin id in ADMINS, skipping")
			continue
		}
		admins = append(admins, id)
	}
	return admins
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
