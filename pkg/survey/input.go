package survey

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/triplea-rent/feedbackbot/pkg/survey/ui"
)

// InputKind tags the decoded inbound event shape. Decoding happens once, at
// the boundary; step handling matches on the tag instead of probing fields.
type InputKind int

const (
	InputText InputKind = iota
	InputContact
	InputTap
)

// Input is the tagged variant over text messages, structured contact
// payloads and button taps.
type Input struct {
	Kind InputKind

	// Text carries the trimmed message text for InputText.
	Text string
	// Phone carries the structured phone number for InputContact.
	Phone string
	// Tap and Value carry the decoded callback for InputTap.
	Tap   ui.TapKind
	Value string

	MessageID  int
	CallbackID string
}

func decodeMessage(m *tgbotapi.Message) Input {
	if m.Contact != nil {
		return Input{
			Kind:      InputContact,
			Phone:     m.Contact.PhoneNumber,
			MessageID: m.MessageID,
		}
	}
	return Input{
		Kind:      InputText,
		Text:      strings.TrimSpace(m.Text),
		MessageID: m.MessageID,
	}
}

func decodeTap(q *tgbotapi.CallbackQuery) Input {
	kind, value := ui.DecodeCallback(q.Data)
	in := Input{
		Kind:       InputTap,
		Tap:        kind,
		Value:      value,
		CallbackID: q.ID,
	}
	if q.Message != nil {
		in.MessageID = q.Message.MessageID
	}
	return in
}
