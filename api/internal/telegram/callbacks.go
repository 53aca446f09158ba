package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	cid := cb.Message.Chat.ID
	data := cb.Data
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack

	sess := sessionFor(cid)
	switch {
	case data == "scan":
		r.beginCapture(cid)

	case data == "back":
		sess.mu.Lock()
		sess.router.Back()
		sess.mu.Unlock()
		r.showList(cid)

	case strings.HasPrefix(data, "open:"):
		id := strings.TrimPrefix(data, "open:")
		sess.mu.Lock()
		sess.router.OpenDetail(id)
		sess.mu.Unlock()
		r.showDetail(cid, sess, id)

	case strings.HasPrefix(data, "del:"):
		id := strings.TrimPrefix(data, "del:")
		edit := tgbotapi.NewEditMessageReplyMarkup(cid, cb.Message.MessageID, confirmDeleteKeyboard(id))
		_, _ = r.Bot.Send(edit)

	case strings.HasPrefix(data, "delyes:"):
		r.onDeleteConfirmed(cid, sess, strings.TrimPrefix(data, "delyes:"))

	case strings.HasPrefix(data, "delno:"):
		id := strings.TrimPrefix(data, "delno:")
		if rec, ok := r.History.Get(id); ok {
			edit := tgbotapi.NewEditMessageReplyMarkup(cid, cb.Message.MessageID, detailKeyboard(rec))
			_, _ = r.Bot.Send(edit)
		}
	}
}

// onDeleteConfirmed removes the record and, when it was the one being
// viewed, drops the chat back to the list.
func (r *Router) onDeleteConfirmed(cid int64, sess *session, id string) {
	if err := r.History.Delete(context.Background(), id); err != nil {
		r.send(cid, "Delete failed: "+err.Error())
		return
	}
	scanChats.Delete(id)

	sess.mu.Lock()
	sess.router.RecordDeleted(id)
	sess.mu.Unlock()

	r.send(cid, "Deleted.")
	r.showList(cid)
}
