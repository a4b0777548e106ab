package bot

import (
	"fmt"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Client wraps the Telegram Bot API with the handful of operations the
// survey flow needs. Outgoing text is HTML-formatted.
type Client struct {
	api  *tgbotapi.BotAPI
	Self *tgbotapi.User
	log  logrus.FieldLogger
}

func NewClient(token string, log logrus.FieldLogger) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token cannot be empty")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api instance: %w", err)
	}
	api.Debug = false

	me, err := api.GetMe()
	if err != nil {
		return nil, fmt.Errorf("failed to verify bot token with GetMe(): %w", err)
	}
	log.WithField("username", me.UserName).Info("bot token verified")

	return &Client{api: api, Self: &me, log: log}, nil
}

func (c *Client) SendMessage(chatID int64, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sent, err := c.api.Send(msg)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("failed to send message: %w", err)
	}
	return sent, nil
}

// EditMessageText rewrites a message. A nil markup replaces the inline
// keyboard with an empty one, clearing the rendered controls.
func (c *Client) EditMessageText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	if messageID == 0 {
		c.log.WithField("chat_id", chatID).Warn("EditMessageText called with messageID=0, sending new message instead")
		if markup == nil {
			return c.SendMessage(chatID, text, nil)
		}
		return c.SendMessage(chatID, text, markup)
	}

	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup == nil {
		empty := tgbotapi.NewInlineKeyboardMarkup()
		empty.InlineKeyboard = [][]tgbotapi.InlineKeyboardButton{}
		markup = &empty
	}
	msg.ReplyMarkup = markup

	sent, err := c.api.Send(msg)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("failed to edit message %d: %w", messageID, err)
	}
	return sent, nil
}

func (c *Client) AnswerCallback(callbackID string, text string, alert bool) error {
	if callbackID == "" {
		return fmt.Errorf("callbackID cannot be empty")
	}
	var cb tgbotapi.CallbackConfig
	if alert {
		cb = tgbotapi.NewCallbackWithAlert(callbackID, text)
	} else {
		cb = tgbotapi.NewCallback(callbackID, text)
	}
	if _, err := c.api.Request(cb); err != nil {
		return fmt.Errorf("failed to answer callback query %s: %w", callbackID, err)
	}
	return nil
}

// RegisterWebhook points Telegram at the public webhook URL. A non-empty
// secret is passed as setWebhook's secret_token, so Telegram echoes it in
// the X-Telegram-Bot-Api-Secret-Token header of every delivery.
func (c *Client) RegisterWebhook(publicURL, secret string) error {
	if _, err := url.ParseRequestURI(publicURL); err != nil {
		return fmt.Errorf("invalid webhook url '%s': %w", publicURL, err)
	}
	params := tgbotapi.Params{"url": publicURL}
	params.AddNonEmpty("secret_token", secret)
	if _, err := c.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}
	return nil
}
