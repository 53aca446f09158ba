package telegram

import (
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"snap-solver/api/internal/scan"
	"snap-solver/api/internal/view"
)

// scanChats remembers which chat started each scan so the settle
// notification can find its way back.
var scanChats sync.Map // recordID -> chatID

const (
	maxListButtons = 10

	// detailMaxRunes keeps the solution under Telegram's 4096-char
	// message limit with headroom for the markup.
	detailMaxRunes = 3900
)

func (r *Router) showList(cid int64) {
	records := r.History.List()
	if len(records) == 0 {
		msg := tgbotapi.NewMessage(cid, "No scans yet. Photograph a problem to get started.")
		msg.ReplyMarkup = listKeyboard(nil)
		_, _ = r.Bot.Send(msg)
		return
	}

	var b strings.Builder
	b.WriteString("🗂 Your scans, newest first:\n")
	for i, rec := range records {
		fmt.Fprintf(&b, "%d. %s %s — %s\n", i+1, statusIcon(rec.Status), rec.Title, rec.CreatedAt.Local().Format("Jan 2 15:04"))
		if i+1 == maxListButtons {
			break
		}
	}
	msg := tgbotapi.NewMessage(cid, b.String())
	msg.ReplyMarkup = listKeyboard(records)
	_, _ = r.Bot.Send(msg)
}

func (r *Router) showDetail(cid int64, sess *session, id string) {
	rec, ok := r.History.Get(id)
	if !ok {
		// Deleted from another path: fall back instead of failing.
		msg := tgbotapi.NewMessage(cid, "Scan not found. It may have been deleted.")
		msg.ReplyMarkup = backKeyboard()
		_, _ = r.Bot.Send(msg)
		return
	}

	msg := tgbotapi.NewMessage(cid, renderDetail(rec))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = detailKeyboard(rec)
	sent, err := r.Bot.Send(msg)
	if err != nil {
		return
	}
	sess.mu.Lock()
	sess.detailMsgID = sent.MessageID
	sess.mu.Unlock()
}

// NotifySettled is wired as the orchestrator's OnSettled hook. If the
// originating chat is still on the detail screen for this record, the
// pending message is edited in place; otherwise a short note is sent.
func (r *Router) NotifySettled(rec scan.Record) {
	v, ok := scanChats.LoadAndDelete(rec.ID)
	if !ok {
		return // not started from a chat (e.g. HTTP API)
	}
	cid := v.(int64)
	sess := sessionFor(cid)

	sess.mu.Lock()
	onDetail := sess.router.Screen() == view.ScreenDetail && sess.router.ActiveID() == rec.ID
	msgID := sess.detailMsgID
	sess.mu.Unlock()

	if onDetail && msgID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(cid, msgID, renderDetail(rec), detailKeyboard(rec))
		edit.ParseMode = "Markdown"
		if _, err := r.Bot.Send(edit); err == nil {
			return
		}
		// fall through to a plain message when the edit is rejected
	}
	r.send(cid, fmt.Sprintf("Your scan %q is ready — open it from /history.", rec.Title))
}

func renderDetail(rec scan.Record) string {
	switch rec.Status {
	case scan.StatusPending:
		return "⏳ Working on it... The solution will appear here."
	case scan.StatusFailed:
		return "❌ " + scan.FailedTitle + "\n\n" + rec.ErrorMessage
	default:
		text := rec.SolutionText
		// Cut on a rune boundary so math symbols never split mid-sequence.
		if r := []rune(text); len(r) > detailMaxRunes {
			text = string(r[:detailMaxRunes]) + "…"
		}
		return text
	}
}

func statusIcon(s scan.Status) string {
	switch s {
	case scan.StatusPending:
		return "⏳"
	case scan.StatusFailed:
		return "❌"
	default:
		return "✅"
	}
}
