package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDefaultHandler returns the fallback handler for updates no other
// handler matched. Unrecognized text gets a fixed polite reply; anything
// else, including callback queries with unknown tokens, is ignored.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	return defaultHandler{deps}.Handle
}

// defaultHandler answers unrecognized text messages.
type defaultHandler struct {
	deps HandlerDeps
}

func (h defaultHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "default")

	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		log.DebugContext(ctx, "Ignoring unmatched non-text update", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Unrecognized command", "chat_id", chatID, "text", update.Message.Text)

	if _, err := h.deps.Gateway.SendText(ctx, chatID, h.deps.Config.Messages.NotRecognized, nil); err != nil {
		log.ErrorContext(ctx, "Failed to send not-recognized reply", "error", err, "chat_id", chatID)
	}
}
