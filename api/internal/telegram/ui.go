package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"snap-solver/api/internal/scan"
)

func listKeyboard(records []scan.Record) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, maxListButtons+1)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📷 New scan", "scan"),
	))
	for i, rec := range records {
		if i == maxListButtons {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(rec.Title, "open:"+rec.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func detailKeyboard(rec scan.Record) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅ Back", "back"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", "del:"+rec.ID),
		),
	)
}

// Deletion asks for an explicit yes before the record goes away.
func confirmDeleteKeyboard(id string) tgbotapi.InlineKeyboardMarkup {
	yes := tgbotapi.NewInlineKeyboardButtonData("Yes, delete", "delyes:"+id)
	no := tgbotapi.NewInlineKeyboardButtonData("No, keep it", "delno:"+id)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(yes, no))
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅ Back", "back"),
		),
	)
}
