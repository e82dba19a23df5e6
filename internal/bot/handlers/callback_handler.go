package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewRegisterCallbackHandler returns a handler for a registration button
// press. It edits the prompt message identified by the callback to the given
// response text. Tokens other than the two registration tokens are never
// routed here, so unknown callbacks stay silent.
func NewRegisterCallbackHandler(deps HandlerDeps, responseText string) bot.HandlerFunc {
	return registerCallbackHandler{deps: deps, responseText: responseText}.Handle
}

// registerCallbackHandler edits the registration prompt after a button press.
type registerCallbackHandler struct {
	deps         HandlerDeps
	responseText string
}

func (h registerCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "register_callback")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Callback handler received update without callback query", "update_id", update.ID)
		return
	}

	callback := update.CallbackQuery

	var chatID int64
	var messageID int
	switch {
	case callback.Message.Message != nil:
		chatID = callback.Message.Message.Chat.ID
		messageID = callback.Message.Message.ID
	case callback.Message.InaccessibleMessage != nil:
		chatID = callback.Message.InaccessibleMessage.Chat.ID
		messageID = callback.Message.InaccessibleMessage.MessageID
	default:
		log.WarnContext(ctx, "Callback query carries no message reference", "callback_query_id", callback.ID)
		return
	}

	log.InfoContext(ctx, "Handling registration callback",
		"chat_id", chatID, "message_id", messageID, "user_id", callback.From.ID, "data", callback.Data)

	if err := h.deps.Gateway.EditText(ctx, chatID, messageID, h.responseText); err != nil {
		log.ErrorContext(ctx, "Failed to edit registration prompt", "error", err, "chat_id", chatID, "message_id", messageID)
	}
}
