package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewRegisterHandler returns a handler for the /register command. It sends
// the confirmation prompt with Yes/No inline buttons; nothing is persisted
// at this step, and nothing ties the eventual button press back to this
// prompt beyond the two callback tokens.
func NewRegisterHandler(deps HandlerDeps) bot.HandlerFunc {
	return registerHandler{deps}.Handle
}

// registerHandler processes the /register command using injected dependencies.
type registerHandler struct {
	deps HandlerDeps
}

func (h registerHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "register")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Register handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /register command", "chat_id", chatID, "user_id", update.Message.From.ID)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Yes", CallbackData: YesButtonToken},
				{Text: "No", CallbackData: NoButtonToken},
			},
		},
	}

	if _, err := h.deps.Gateway.SendText(ctx, chatID, h.deps.Config.Messages.RegisterPrompt, keyboard); err != nil {
		log.ErrorContext(ctx, "Failed to send registration prompt", "error", err, "chat_id", chatID)
	}
}
