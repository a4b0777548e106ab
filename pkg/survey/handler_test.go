package survey

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triplea-rent/feedbackbot/pkg/bot/fakeadapter"
	"github.com/triplea-rent/feedbackbot/pkg/i18n"
	"github.com/triplea-rent/feedbackbot/pkg/report"
	"github.com/triplea-rent/feedbackbot/pkg/state"
)

const (
	testUserID = int64(42)
	testChatID = int64(42)
	groupChat  = int64(-1001234)
	adminChat  = int64(900)
)

type fixture struct {
	fake     *fakeadapter.FakeAdapter
	table    *i18n.Table
	locales  *i18n.Store
	sessions *state.Store
	handler  *Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fake := &fakeadapter.FakeAdapter{}
	table := i18n.NewTable("ru")
	locales := i18n.NewStore(table.Default())
	sessions := state.NewStore(NewMachine, nil)
	deliverer := report.NewDeliverer(fake, groupChat, []int64{adminChat}, nil)
	return &fixture{
		fake:     fake,
		table:    table,
		locales:  locales,
		sessions: sessions,
		handler:  NewHandler(fake, table, locales, sessions, deliverer, nil),
	}
}

func (f *fixture) handle(update tgbotapi.Update) {
	f.handler.HandleUpdate(context.Background(), update)
}

func (f *fixture) session(t *testing.T) *state.Session {
	t.Helper()
	sess, ok := f.sessions.Get(testUserID)
	require.True(t, ok, "expected an active session")
	return sess
}

func (f *fixture) lastKeyboardMessageID(t *testing.T) int {
	t.Helper()
	call := f.fake.LastCall("send_message")
	require.NotNil(t, call)
	return call.MessageID
}

func testUser() *tgbotapi.User {
	return &tgbotapi.User{ID: testUserID, FirstName: "Alice", LastName: "Doe", UserName: "AliceD"}
}

func commandUpdate(cmd string) tgbotapi.Update {
	text := "/" + cmd
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 10,
			From:      testUser(),
			Chat:      &tgbotapi.Chat{ID: testChatID, Type: "private"},
			Text:      text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(text)},
			},
		},
	}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 2,
		Message: &tgbotapi.Message{
			MessageID: 11,
			From:      testUser(),
			Chat:      &tgbotapi.Chat{ID: testChatID, Type: "private"},
			Text:      text,
		},
	}
}

func contactUpdate(phone string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 3,
		Message: &tgbotapi.Message{
			MessageID: 12,
			From:      testUser(),
			Chat:      &tgbotapi.Chat{ID: testChatID, Type: "private"},
			Contact:   &tgbotapi.Contact{PhoneNumber: phone, UserID: testUserID},
		},
	}
}

func tapUpdate(messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 4,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			From: testUser(),
			Message: &tgbotapi.Message{
				MessageID: messageID,
				Chat:      &tgbotapi.Chat{ID: testChatID, Type: "private"},
				Text:      "prompt",
			},
			Data: data,
		},
	}
}

func TestStartCreatesSessionAndAsksCompany(t *testing.T) {
	f := newFixture(t)

	f.handle(commandUpdate("start"))

	sess := f.session(t)
	assert.Equal(t, StateCompany, sess.Machine.Current())
	assert.Empty(t, sess.Answers)

	calls := f.fake.CallsTo(testChatID)
	require.Len(t, calls, 3)
	assert.Equal(t, f.table.Text("ru", i18n.KeyAskLang), calls[0].Text)
	assert.Equal(t, f.table.Text("ru", i18n.KeyStart), calls[1].Text)
	assert.Equal(t, f.table.Text("ru", i18n.KeyAskCompany), calls[2].Text)
}

func TestAnswersOnlyAppearAfterTheirStep(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))

	sess := f.session(t)
	assert.NotContains(t, sess.Answers, report.KeyCompany)

	f.handle(textUpdate("Acme Rentals"))
	assert.Equal(t, map[string]string{report.KeyCompany: "Acme Rentals"}, sess.Answers)
	assert.Equal(t, StateContact, sess.Machine.Current())
	assert.NotContains(t, sess.Answers, report.KeyContact)
}

func TestEmptyDoneIsRejectedWithoutStateChange(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme"))
	f.handle(textUpdate("+998901112233"))

	sess := f.session(t)
	require.Equal(t, StateModules, sess.Machine.Current())
	msgID := f.lastKeyboardMessageID(t)

	f.handle(tapUpdate(msgID, "m:done"))

	assert.Equal(t, StateModules, sess.Machine.Current())
	assert.Empty(t, sess.Modules)
	ack := f.fake.LastCall("answer_callback")
	require.NotNil(t, ack)
	assert.True(t, ack.Alert)
	assert.Equal(t, f.table.Text("ru", i18n.KeyChoose), ack.Text)
}

func TestModuleToggleRerendersKeyboard(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme"))
	f.handle(textUpdate("+998901112233"))
	msgID := f.lastKeyboardMessageID(t)

	f.handle(tapUpdate(msgID, "m:payments"))

	sess := f.session(t)
	assert.Equal(t, []string{"payments"}, sess.Modules)

	edit := f.fake.LastCall("edit_message")
	require.NotNil(t, edit)
	assert.Equal(t, msgID, edit.MessageID)
	kb, ok := edit.Markup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	var marked bool
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if strings.HasSuffix(btn.Text, "✅") {
				marked = true
			}
		}
	}
	assert.True(t, marked, "expected a checkmark on the selected module")

	// Unknown codes are ignored.
	f.handle(tapUpdate(msgID, "m:bogus"))
	assert.Equal(t, []string{"payments"}, sess.Modules)
}

func TestInvalidRatingReprompts(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme"))
	f.handle(textUpdate("+998901112233"))
	msgID := f.lastKeyboardMessageID(t)
	f.handle(tapUpdate(msgID, "m:payments"))
	f.handle(tapUpdate(msgID, "m:done"))

	sess := f.session(t)
	require.Equal(t, StateRating, sess.Machine.Current())
	ratingMsgID := f.lastKeyboardMessageID(t)

	f.handle(tapUpdate(ratingMsgID, "r:9"))

	assert.Equal(t, StateRating, sess.Machine.Current())
	assert.NotContains(t, sess.Answers, report.KeyRating)
	ack := f.fake.LastCall("answer_callback")
	require.NotNil(t, ack)
	assert.True(t, ack.Alert)
	assert.Equal(t, f.table.Text("ru", i18n.KeyInvalidRating), ack.Text)
}

func TestCancelDestroysSessionFromAnyStep(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme"))
	sess := f.session(t)

	f.handle(commandUpdate("cancel"))

	// The machine took the global cancel transition before teardown.
	assert.Equal(t, StateIdle, sess.Machine.Current())
	_, ok := f.sessions.Get(testUserID)
	assert.False(t, ok)
	last := f.fake.LastCall("send_message")
	require.NotNil(t, last)
	assert.Equal(t, f.table.Text("ru", i18n.KeyCancel), last.Text)

	// A subsequent start begins field-empty.
	f.handle(commandUpdate("start"))
	fresh := f.session(t)
	assert.Empty(t, fresh.Answers)
	assert.Equal(t, StateCompany, fresh.Machine.Current())
}

func TestCancelWaitsForInFlightStep(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	sess := f.session(t)

	sess.Mu.Lock()
	done := make(chan struct{})
	go func() {
		f.handle(commandUpdate("cancel"))
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("cancel tore down the session while its step was in flight")
	case <-time.After(50 * time.Millisecond):
	}
	sess.Mu.Unlock()

	<-done
	_, ok := f.sessions.Get(testUserID)
	assert.False(t, ok)
}

func TestRestartDiscardsPriorAnswers(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme"))
	f.handle(textUpdate("+998901112233"))

	f.handle(commandUpdate("start"))

	sess := f.session(t)
	assert.Empty(t, sess.Answers)
	assert.Empty(t, sess.Modules)
	assert.Equal(t, StateCompany, sess.Machine.Current())
}

func TestLocaleSwitchMidSurveyKeepsStepAndAnswers(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme Rentals"))

	sess := f.session(t)
	require.Equal(t, StateContact, sess.Machine.Current())

	f.handle(tapUpdate(5, "lang:uz"))

	assert.Equal(t, "uz", f.locales.Resolve(testUserID))
	assert.Equal(t, StateContact, sess.Machine.Current())
	assert.Equal(t, "Acme Rentals", sess.Answers[report.KeyCompany])

	// The next prompt renders in the new locale.
	f.handle(textUpdate("+998901112233"))
	last := f.fake.LastCall("send_message")
	require.NotNil(t, last)
	assert.Equal(t, f.table.Text("uz", i18n.KeyAskModules), last.Text)
}

func TestMessagesOutsideSurveyAreIgnored(t *testing.T) {
	f := newFixture(t)

	f.handle(textUpdate("hello"))

	assert.Empty(t, f.fake.Calls)
	_, ok := f.sessions.Get(testUserID)
	assert.False(t, ok)
}

func TestWhereamiReportsChatIdentity(t *testing.T) {
	f := newFixture(t)

	f.handle(commandUpdate("whereami"))

	last := f.fake.LastCall("send_message")
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "chat_id: <code>42</code>")
	assert.Contains(t, last.Text, "chat_type: <code>private</code>")
}

func TestEndToEndScenario(t *testing.T) {
	f := newFixture(t)

	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme Rentals"))
	f.handle(contactUpdate("+998901234567"))

	msgID := f.lastKeyboardMessageID(t)
	f.handle(tapUpdate(msgID, "m:client_bot"))
	f.handle(tapUpdate(msgID, "m:payments"))
	f.handle(tapUpdate(msgID, "m:client_bot"))

	sess := f.session(t)
	require.Equal(t, []string{"payments"}, sess.Modules)

	f.handle(tapUpdate(msgID, "m:done"))
	require.Equal(t, StateRating, sess.Machine.Current())

	f.handle(tapUpdate(f.lastKeyboardMessageID(t), "r:4"))
	f.handle(textUpdate("fast"))
	f.handle(textUpdate("slow search"))
	f.handle(textUpdate(""))
	f.handle(textUpdate("export"))
	require.Equal(t, StateReady, sess.Machine.Current())

	f.handle(tapUpdate(f.lastKeyboardMessageID(t), "yn:yes"))

	// Session destroyed after hand-off.
	_, ok := f.sessions.Get(testUserID)
	assert.False(t, ok)

	// Report delivered to the primary group and duplicated to the admin.
	groupCalls := f.fake.CallsTo(groupChat)
	require.Len(t, groupCalls, 1)
	text := groupCalls[0].Text
	assert.Contains(t, text, "Компания: Acme Rentals")
	assert.Contains(t, text, "Контакт: +998901234567")
	assert.Contains(t, text, "Модули: Платежи/Инвойсы")
	assert.NotContains(t, text, "Клиентский Telegram‑бот")
	assert.Contains(t, text, "Оценка: 4")
	assert.Contains(t, text, "Понравилось: fast")
	assert.Contains(t, text, "Неудобно: slow search")
	assert.Contains(t, text, "Must-have: export")
	assert.Contains(t, text, "Готовы продолжать: Да")
	require.Len(t, f.fake.CallsTo(adminChat), 1)

	// The user sees the thanks message.
	userCalls := f.fake.CallsTo(testChatID)
	lastToUser := userCalls[len(userCalls)-1]
	assert.Equal(t, f.table.Text("ru", i18n.KeyThanks), lastToUser.Text)
}

func TestPrimaryDeliveryFailureShowsNoticeAndDropsSession(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme"))
	f.handle(contactUpdate("+998901234567"))
	msgID := f.lastKeyboardMessageID(t)
	f.handle(tapUpdate(msgID, "m:payments"))
	f.handle(tapUpdate(msgID, "m:done"))
	f.handle(tapUpdate(f.lastKeyboardMessageID(t), "r:5"))
	f.handle(textUpdate("a"))
	f.handle(textUpdate("b"))
	f.handle(textUpdate("c"))
	f.handle(textUpdate("d"))

	f.fake.FailChat(groupChat, fakeadapter.Forbidden("send_message"))
	f.handle(tapUpdate(f.lastKeyboardMessageID(t), "yn:yes"))

	_, ok := f.sessions.Get(testUserID)
	assert.False(t, ok, "session destroyed even on delivery failure")

	last := f.fake.LastCall("send_message")
	require.NotNil(t, last)
	assert.Equal(t, f.table.Text("ru", i18n.KeyDeliveryFail), last.Text)
	assert.Empty(t, f.fake.CallsTo(adminChat), "secondaries skipped after primary failure")

	// The final prompt's keyboard is cleared even when delivery fails.
	edit := f.fake.LastCall("edit_message")
	require.NotNil(t, edit)
	assert.Equal(t, f.table.Text("ru", i18n.KeyAskReady), edit.Text)
	assert.Nil(t, edit.Markup)

	// A following start begins a fresh empty session.
	f.handle(commandUpdate("start"))
	sess := f.session(t)
	assert.Empty(t, sess.Answers)
}

func TestContactPrefersStructuredPayload(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme"))

	f.handle(contactUpdate("+998901234567"))

	sess := f.session(t)
	assert.Equal(t, "+998901234567", sess.Answers[report.KeyContact])
	assert.Equal(t, StateModules, sess.Machine.Current())
}

func TestContactAcceptsFreeText(t *testing.T) {
	f := newFixture(t)
	f.handle(commandUpdate("start"))
	f.handle(textUpdate("Acme"))

	f.handle(textUpdate("  call me at 99-88  "))

	sess := f.session(t)
	assert.Equal(t, "call me at 99-88", sess.Answers[report.KeyContact])
	assert.Equal(t, StateModules, sess.Machine.Current())
}
