package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMyDataHandler returns a handler for the /mydata command, replying with
// the caller's stored registration record.
func NewMyDataHandler(deps HandlerDeps) bot.HandlerFunc {
	return myDataHandler{deps}.Handle
}

// myDataHandler processes the /mydata command using injected dependencies.
type myDataHandler struct {
	deps HandlerDeps
}

func (h myDataHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "mydata")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "MyData handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /mydata command", "chat_id", chatID, "user_id", update.Message.From.ID)

	user, err := h.deps.Store.GetUser(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load user data", "error", err, "chat_id", chatID)
		return
	}

	text := h.deps.Config.Messages.MyDataEmpty
	if user != nil {
		text = fmt.Sprintf("First name: %s\nLast name: %s\nUsername: %s\nRegistered at: %s",
			user.FirstName, user.LastName, user.UserName,
			user.RegisteredAt.Format(time.RFC1123))
	}

	if _, err := h.deps.Gateway.SendText(ctx, chatID, text, nil); err != nil {
		log.ErrorContext(ctx, "Failed to send user data reply", "error", err, "chat_id", chatID)
	}
}
