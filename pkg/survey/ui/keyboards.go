package ui

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/triplea-rent/feedbackbot/pkg/i18n"
)

// Keyboard builders for every interactive step. No validation lives here;
// the survey driver decides what a tap means.

// ModuleColumns is the default grid width for the module multi-select.
const ModuleColumns = 2

type button struct {
	label string
	data  string
}

func grid(items []button, columns int) [][]tgbotapi.InlineKeyboardButton {
	if columns < 1 {
		columns = 1
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, b := range items {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.label, b.data))
		if len(row) >= columns {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// LocaleKeyboard offers the language pair.
func LocaleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Русский", PrefixLocale+"ru"),
			tgbotapi.NewInlineKeyboardButtonData("O‘zbekcha", PrefixLocale+"uz"),
		),
	)
}

// ContactKeyboard is a one-shot reply keyboard with a phone-share button.
func ContactKeyboard(label string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(label),
		),
	)
	kb.ResizeKeyboard = true
	kb.Selective = true
	return kb
}

// ModulesKeyboard renders the toggle grid, decorating selected codes with a
// checkmark, plus the terminal done row.
func ModulesKeyboard(catalog []i18n.Module, selected []string, doneLabel string, columns int) tgbotapi.InlineKeyboardMarkup {
	items := make([]button, 0, len(catalog))
	for _, m := range catalog {
		label := m.Label
		if contains(selected, m.Code) {
			label += " ✅"
		}
		items = append(items, button{label: label, data: PrefixModule + m.Code})
	}
	rows := grid(items, columns)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(doneLabel, PrefixModule+ModuleDone),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// RatingKeyboard renders the 1–5 scale as a single row.
func RatingKeyboard(values []string) tgbotapi.InlineKeyboardMarkup {
	items := make([]button, 0, len(values))
	for _, v := range values {
		items = append(items, button{label: v, data: PrefixRating + v})
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: grid(items, len(values))}
}

// YesNoKeyboard renders the binary confirmation pair.
func YesNoKeyboard(yesLabel, noLabel string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(yesLabel, PrefixReady+"yes"),
			tgbotapi.NewInlineKeyboardButtonData(noLabel, PrefixReady+"no"),
		),
	)
}

func contains(set []string, code string) bool {
	for _, c := range set {
		if c == code {
			return true
		}
	}
	return false
}
