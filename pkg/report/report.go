package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/triplea-rent/feedbackbot/pkg/i18n"
	"github.com/triplea-rent/feedbackbot/pkg/state"
)

// Answer keys written by the survey driver and read back here.
const (
	KeyCompany = "company"
	KeyContact = "contact"
	KeyRating  = "rating"
	KeyPros    = "pros"
	KeyCons    = "cons"
	KeyBugs    = "bugs"
	KeyMissing = "missing"
	KeyReady   = "ready"
)

// Report is a read-only snapshot of a completed session, ready for
// rendering. It is never stored.
type Report struct {
	UserID   int64
	UserName string
	Username string

	Company string
	Contact string
	Modules []string
	Rating  string
	Pros    string
	Cons    string
	Bugs    string
	Missing string
	Ready   bool

	SubmittedAt time.Time
}

// FromSession snapshots a completed session. The session remains owned by
// the caller; nothing here retains a reference to its mutable parts.
func FromSession(s *state.Session) Report {
	return Report{
		UserID:      s.UserID,
		UserName:    s.UserName,
		Username:    s.Username,
		Company:     s.Answers[KeyCompany],
		Contact:     s.Answers[KeyContact],
		Modules:     append([]string(nil), s.Modules...),
		Rating:      s.Answers[KeyRating],
		Pros:        s.Answers[KeyPros],
		Cons:        s.Answers[KeyCons],
		Bugs:        s.Answers[KeyBugs],
		Missing:     s.Answers[KeyMissing],
		Ready:       s.Answers[KeyReady] == "yes",
		SubmittedAt: time.Now().UTC(),
	}
}

// Render produces the HTML report text posted to the group. Module codes are
// resolved to their display labels through the locale catalog.
func (r Report) Render(table *i18n.Table, locale string) string {
	labels := make([]string, 0, len(r.Modules))
	for _, code := range r.Modules {
		labels = append(labels, table.ModuleLabel(locale, code))
	}

	ready := "Нет"
	if r.Ready {
		ready = "Да"
	}

	var b strings.Builder
	b.WriteString("🆕 <b>Новый фидбек по MVP TripleA</b>\n")
	fmt.Fprintf(&b, "⏱ %s UTC\n", r.SubmittedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "👤 Пользователь: <a href='tg://user?id=%d'>%s</a> (@%s)\n", r.UserID, r.UserName, strings.ToLower(r.Username))
	fmt.Fprintf(&b, "🏢 Компания: %s\n", r.Company)
	fmt.Fprintf(&b, "📞 Контакт: %s\n", r.Contact)
	fmt.Fprintf(&b, "🧩 Модули: %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(&b, "⭐️ Оценка: %s\n", r.Rating)
	fmt.Fprintf(&b, "👍 Понравилось: %s\n", r.Pros)
	fmt.Fprintf(&b, "👎 Неудобно: %s\n", r.Cons)
	fmt.Fprintf(&b, "🐞 Баги: %s\n", r.Bugs)
	fmt.Fprintf(&b, "➕ Must-have: %s\n", r.Missing)
	fmt.Fprintf(&b, "🚀 Готовы продолжать: %s", ready)
	return b.String()
}
