package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// parseLabInvocation matches "/lab ...", "lab ..." or "/lab@<botname> ..."
// case-insensitively and returns the whitespace-tokenized arguments after
// the command keyword.
func (b *Bot) parseLabInvocation(text string) ([]string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}

	keyword := strings.ToLower(fields[0])
	keyword = strings.TrimPrefix(keyword, "/")
	if at := strings.Index(keyword, "@"); at >= 0 {
		self := strings.ToLower(b.tg.GetSelf().UserName)
		if keyword[at+1:] != self {
			return nil, false
		}
		keyword = keyword[:at]
	}

	if keyword != "lab" {
		return nil, false
	}
	return fields[1:], true
}

func isStartCommand(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "/start", "/help":
		return true
	default:
		return false
	}
}

func isExportCommand(text string) bool {
	return strings.ToLower(strings.TrimSpace(text)) == "/export"
}

func (b *Bot) isManager(userID int64) bool {
	for _, managerID := range b.config.Managers {
		if userID == managerID {
			return true
		}
	}
	return false
}

func (b *Bot) isBlacklisted(userID int64) bool {
	for _, blacklistedID := range b.config.Blacklist {
		if userID == blacklistedID {
			return true
		}
	}
	return false
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.tg.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}
