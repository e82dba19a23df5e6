package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDeleteDataHandler returns a handler for the /deletedata command,
// removing the caller's registration record.
func NewDeleteDataHandler(deps HandlerDeps) bot.HandlerFunc {
	return deleteDataHandler{deps}.Handle
}

// deleteDataHandler processes the /deletedata command using injected dependencies.
type deleteDataHandler struct {
	deps HandlerDeps
}

func (h deleteDataHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "deletedata")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "DeleteData handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /deletedata command", "chat_id", chatID, "user_id", update.Message.From.ID)

	if err := h.deps.Store.DeleteUser(ctx, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to delete user data", "error", err, "chat_id", chatID)
		return
	}

	if _, err := h.deps.Gateway.SendText(ctx, chatID, h.deps.Config.Messages.DataDeleted, nil); err != nil {
		log.ErrorContext(ctx, "Failed to send deletion confirmation", "error", err, "chat_id", chatID)
	}
}
