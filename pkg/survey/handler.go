package survey

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/triplea-rent/feedbackbot/pkg/i18n"
	"github.com/triplea-rent/feedbackbot/pkg/ports/botport"
	"github.com/triplea-rent/feedbackbot/pkg/report"
	"github.com/triplea-rent/feedbackbot/pkg/state"
	"github.com/triplea-rent/feedbackbot/pkg/survey/ui"
)

// Handler drives the survey: it owns dispatch from inbound updates to the
// step table, session mutation and prompt rendering.
type Handler struct {
	port      botport.BotPort
	table     *i18n.Table
	locales   *i18n.Store
	sessions  *state.Store
	deliverer *report.Deliverer
	log       logrus.FieldLogger
}

func NewHandler(port botport.BotPort, table *i18n.Table, locales *i18n.Store, sessions *state.Store, deliverer *report.Deliverer, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		port:      port,
		table:     table,
		locales:   locales,
		sessions:  sessions,
		deliverer: deliverer,
		log:       log,
	}
}

// HandleUpdate processes one inbound event to completion: validate, mutate
// the session, render the response. One update, one unit of work.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	from, chatID, ok := identify(update)
	if !ok {
		h.log.Debug("ignoring update without a usable sender")
		return
	}
	locale := h.locales.Resolve(from.ID)

	switch {
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(ctx, update.Message, from, chatID, locale)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message, from, chatID, locale)
	case update.CallbackQuery != nil:
		h.handleTap(ctx, update.CallbackQuery, from, chatID, locale)
	default:
		h.log.Debug("ignoring unsupported update type")
	}
}

func identify(update tgbotapi.Update) (*tgbotapi.User, int64, bool) {
	if update.Message != nil {
		if update.Message.From == nil || update.Message.Chat == nil {
			return nil, 0, false
		}
		return update.Message.From, update.Message.Chat.ID, true
	}
	if update.CallbackQuery != nil {
		q := update.CallbackQuery
		if q.From == nil || q.Message == nil || q.Message.Chat == nil {
			return nil, 0, false
		}
		return q.From, q.Message.Chat.ID, true
	}
	return nil, 0, false
}

func displayName(u *tgbotapi.User) string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

// --- commands ---

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message, from *tgbotapi.User, chatID int64, locale string) {
	switch msg.Command() {
	case "start":
		h.startSurvey(ctx, from, chatID, locale)
	case "cancel":
		h.cancelSurvey(ctx, from, chatID, locale)
	case "lang":
		h.send(ctx, chatID, h.table.Text(locale, i18n.KeyAskLang), ui.LocaleKeyboard())
	case "whereami":
		h.send(ctx, chatID, fmt.Sprintf("chat_id: <code>%d</code>\nchat_type: <code>%s</code>", msg.Chat.ID, msg.Chat.Type), nil)
	case "help":
		h.send(ctx, chatID, h.table.Text(locale, i18n.KeyHelp), nil)
	default:
		h.log.WithFields(logrus.Fields{"user_id": from.ID, "command": msg.Command()}).Debug("ignoring unknown command")
	}
}

// startSurvey wipes any in-progress session and begins a fresh one: locale
// picker, welcome, first prompt.
func (h *Handler) startSurvey(ctx context.Context, from *tgbotapi.User, chatID int64, locale string) {
	sess := h.sessions.Begin(from.ID, chatID, displayName(from), from.UserName)

	h.send(ctx, chatID, h.table.Text(locale, i18n.KeyAskLang), ui.LocaleKeyboard())
	h.send(ctx, chatID, h.table.Text(locale, i18n.KeyStart), nil)

	sess.Mu.Lock()
	defer sess.Mu.Unlock()

	if err := sess.Machine.Event(ctx, EventBegin); err != nil {
		h.log.WithField("user_id", from.ID).WithError(err).Error("failed to begin survey")
		h.sessions.Drop(from.ID)
		return
	}
	h.prompt(ctx, sess, locale)
}

// cancelSurvey fires the global cancel transition, then destroys the
// session. The confirmation is sent whether or not a survey was running.
func (h *Handler) cancelSurvey(ctx context.Context, from *tgbotapi.User, chatID int64, locale string) {
	if sess, ok := h.sessions.Get(from.ID); ok {
		sess.Mu.Lock()
		if err := sess.Machine.Event(ctx, EventCancel); err != nil {
			h.log.WithField("user_id", from.ID).WithError(err).Debug("cancel transition refused")
		}
		sess.Mu.Unlock()
		h.sessions.Drop(from.ID)
	}
	h.send(ctx, chatID, h.table.Text(locale, i18n.KeyCancel), nil)
}

// --- text / contact messages ---

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message, from *tgbotapi.User, chatID int64, locale string) {
	sess, ok := h.sessions.Get(from.ID)
	if !ok {
		h.log.WithField("user_id", from.ID).Debug("message without an active survey, ignoring")
		return
	}

	sess.Mu.Lock()
	defer sess.Mu.Unlock()

	current := sess.Machine.Current()
	spec, ok := specFor(current)
	if !ok || !spec.acceptsText() {
		h.log.WithFields(logrus.Fields{"user_id": from.ID, "step": current}).Debug("step not gated on a message, ignoring")
		return
	}

	in := decodeMessage(msg)

	if current == StateContact {
		// A structured contact payload wins over free text.
		if in.Kind == InputContact {
			sess.Answers[spec.storeKey] = in.Phone
			h.send(ctx, chatID, "✅", tgbotapi.NewRemoveKeyboard(true))
		} else {
			sess.Answers[spec.storeKey] = in.Text
		}
		h.advance(ctx, sess, locale)
		return
	}

	if in.Kind != InputText {
		h.log.WithFields(logrus.Fields{"user_id": from.ID, "step": current}).Debug("non-text payload on a text step, ignoring")
		return
	}

	// Trimmed, empty allowed.
	sess.Answers[spec.storeKey] = in.Text
	h.advance(ctx, sess, locale)
}

// --- button taps ---

func (h *Handler) handleTap(ctx context.Context, q *tgbotapi.CallbackQuery, from *tgbotapi.User, chatID int64, locale string) {
	in := decodeTap(q)

	// Locale switch is orthogonal to survey progress: step and answers
	// stay untouched.
	if in.Tap == ui.TapLocale {
		h.switchLocale(ctx, q, from, chatID, in.Value)
		return
	}

	sess, ok := h.sessions.Get(from.ID)
	if !ok {
		h.ack(ctx, in.CallbackID, "", false)
		return
	}

	sess.Mu.Lock()
	defer sess.Mu.Unlock()

	current := sess.Machine.Current()
	switch {
	case in.Tap == ui.TapModule && current == StateModules:
		h.handleModuleTap(ctx, sess, q, in, locale)
	case in.Tap == ui.TapRating && current == StateRating:
		h.handleRatingTap(ctx, sess, q, in, locale)
	case in.Tap == ui.TapReady && current == StateReady:
		h.handleReadyTap(ctx, sess, in, locale)
	default:
		h.log.WithFields(logrus.Fields{"user_id": from.ID, "step": current, "data": q.Data}).Debug("tap does not match current step, ignoring")
		h.ack(ctx, in.CallbackID, "", false)
	}
}

func (h *Handler) switchLocale(ctx context.Context, q *tgbotapi.CallbackQuery, from *tgbotapi.User, chatID int64, locale string) {
	if !h.table.Known(locale) {
		h.ack(ctx, q.ID, "", false)
		return
	}
	h.locales.Set(from.ID, locale)
	h.ack(ctx, q.ID, "", false)
	if _, err := h.port.EditMessage(ctx, chatID, q.Message.MessageID, h.table.Text(locale, i18n.KeyLangSwitched), nil); err != nil {
		h.logSendError(from.ID, err)
	}
}

func (h *Handler) handleModuleTap(ctx context.Context, sess *state.Session, q *tgbotapi.CallbackQuery, in Input, locale string) {
	if in.Value == ui.ModuleDone {
		if len(sess.Modules) == 0 {
			// Transient inline notice, state unchanged.
			h.ack(ctx, in.CallbackID, h.table.Text(locale, i18n.KeyChoose), true)
			return
		}
		h.ack(ctx, in.CallbackID, "", false)
		h.clearControls(ctx, sess.ChatID, q)
		h.advance(ctx, sess, locale)
		return
	}

	if !inCatalog(h.table.Modules(locale), in.Value) {
		h.ack(ctx, in.CallbackID, "", false)
		return
	}

	sess.ToggleModule(in.Value)
	keyboard := ui.ModulesKeyboard(h.table.Modules(locale), sess.Modules, h.table.Text(locale, i18n.KeyBtnDone), ui.ModuleColumns)
	if _, err := h.port.EditMessage(ctx, sess.ChatID, in.MessageID, q.Message.Text, keyboard); err != nil && !botport.IsCode(err, "message_not_modified") {
		h.logSendError(sess.UserID, err)
	}
	h.ack(ctx, in.CallbackID, "✓", false)
}

func (h *Handler) handleRatingTap(ctx context.Context, sess *state.Session, q *tgbotapi.CallbackQuery, in Input, locale string) {
	if !offeredRating(in.Value) {
		// Re-prompt instead of storing a sentinel: consistent with every
		// other gated step.
		h.ack(ctx, in.CallbackID, h.table.Text(locale, i18n.KeyInvalidRating), true)
		return
	}
	sess.Answers[report.KeyRating] = in.Value
	h.ack(ctx, in.CallbackID, "", false)
	h.clearControls(ctx, sess.ChatID, q)
	h.advance(ctx, sess, locale)
}

func (h *Handler) handleReadyTap(ctx context.Context, sess *state.Session, in Input, locale string) {
	switch in.Value {
	case "yes", "no":
	default:
		h.ack(ctx, in.CallbackID, "", false)
		return
	}
	sess.Answers[report.KeyReady] = in.Value
	h.ack(ctx, in.CallbackID, "", false)
	h.complete(ctx, sess, in, locale)
}

// complete builds the report, hands it off and destroys the session. The
// session is gone and the final prompt's keyboard cleared either way; only
// the user-visible notice tracks the primary delivery result.
func (h *Handler) complete(ctx context.Context, sess *state.Session, in Input, locale string) {
	rep := report.FromSession(sess)
	text := rep.Render(h.table, locale)

	outcome := h.deliverer.Deliver(ctx, text)
	h.sessions.Drop(sess.UserID)

	if _, err := h.port.EditMessage(ctx, sess.ChatID, in.MessageID, h.table.Text(locale, i18n.KeyAskReady), nil); err != nil && !botport.IsCode(err, "message_not_modified") {
		h.logSendError(sess.UserID, err)
	}

	if !outcome.PrimaryOK {
		h.send(ctx, sess.ChatID, h.table.Text(locale, i18n.KeyDeliveryFail), nil)
		return
	}

	h.send(ctx, sess.ChatID, h.table.Text(locale, i18n.KeyThanks), nil)
	h.log.WithFields(logrus.Fields{
		"user_id":            sess.UserID,
		"secondary_failures": outcome.SecondaryFailures,
	}).Info("feedback delivered")
}

// --- driver ---

// advance moves the machine one step forward and renders the next prompt.
func (h *Handler) advance(ctx context.Context, sess *state.Session, locale string) {
	if err := sess.Machine.Event(ctx, EventAdvance); err != nil {
		h.log.WithFields(logrus.Fields{"user_id": sess.UserID, "step": sess.Machine.Current()}).WithError(err).Error("failed to advance survey")
		return
	}
	h.prompt(ctx, sess, locale)
}

// prompt renders the current step's prompt and control.
func (h *Handler) prompt(ctx context.Context, sess *state.Session, locale string) {
	current := sess.Machine.Current()
	spec, ok := specFor(current)
	if !ok {
		return
	}

	text := h.table.Text(locale, spec.promptKey)
	var markup interface{}
	switch spec.control {
	case controlContact:
		markup = ui.ContactKeyboard(h.table.Text(locale, i18n.KeyBtnSharePhone))
	case controlModules:
		markup = ui.ModulesKeyboard(h.table.Modules(locale), sess.Modules, h.table.Text(locale, i18n.KeyBtnDone), ui.ModuleColumns)
	case controlRating:
		markup = ui.RatingKeyboard(RatingScale)
	case controlYesNo:
		markup = ui.YesNoKeyboard(h.table.Text(locale, i18n.KeyBtnYes), h.table.Text(locale, i18n.KeyBtnNo))
	}

	sent, err := h.port.SendMessage(ctx, sess.ChatID, text, markup)
	if err != nil {
		h.logSendError(sess.UserID, err)
		return
	}
	sess.LastMessageID = sent.MessageID
}

// clearControls drops the inline keyboard from the tapped message, keeping
// its text.
func (h *Handler) clearControls(ctx context.Context, chatID int64, q *tgbotapi.CallbackQuery) {
	if q.Message == nil {
		return
	}
	if _, err := h.port.EditMessage(ctx, chatID, q.Message.MessageID, q.Message.Text, nil); err != nil && !botport.IsCode(err, "message_not_modified") {
		h.log.WithField("chat_id", chatID).WithError(err).Debug("failed to clear inline keyboard")
	}
}

func (h *Handler) send(ctx context.Context, chatID int64, text string, markup interface{}) {
	if _, err := h.port.SendMessage(ctx, chatID, text, markup); err != nil {
		h.log.WithField("chat_id", chatID).WithError(err).Warn("failed to send message")
	}
}

func (h *Handler) ack(ctx context.Context, callbackID, text string, alert bool) {
	if callbackID == "" {
		return
	}
	if err := h.port.AnswerCallback(ctx, callbackID, text, alert); err != nil {
		h.log.WithError(err).Debug("failed to answer callback")
	}
}

func (h *Handler) logSendError(userID int64, err error) {
	h.log.WithField("user_id", userID).WithError(err).Warn("outbound message failed")
}

func inCatalog(catalog []i18n.Module, code string) bool {
	for _, m := range catalog {
		if m.Code == code {
			return true
		}
	}
	return false
}

func offeredRating(value string) bool {
	for _, v := range RatingScale {
		if v == value {
			return true
		}
	}
	return false
}
