package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/enescakir/emoji"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mrlang/heraldbot/internal/database"
)

// NewStartHandler returns a handler for the /start command. It registers the
// sender on first contact and always replies with the personalized welcome.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	from := update.Message.From
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", from.ID)

	h.registerUser(ctx, chatID, from)

	welcome := strings.ReplaceAll(h.deps.Config.Messages.Welcome, "{firstname}", from.FirstName)
	welcome = emoji.Parse(welcome)

	if _, err := h.deps.Gateway.SendText(ctx, chatID, welcome, mainMenuKeyboard()); err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", chatID)
		return
	}
	log.DebugContext(ctx, "Sent welcome message", "chat_id", chatID)
}

// registerUser inserts a user record on first contact. Re-running for a known
// chat is a no-op; store failures are logged and never block the welcome.
func (h startHandler) registerUser(ctx context.Context, chatID int64, from *models.User) {
	log := h.deps.Logger.With("handler", "start")

	exists, err := h.deps.Store.UserExists(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check user existence", "error", err, "chat_id", chatID)
		return
	}
	if exists {
		log.DebugContext(ctx, "User already registered", "chat_id", chatID)
		return
	}

	user := &database.User{
		ChatID:       chatID,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		UserName:     from.Username,
		RegisteredAt: time.Now().UTC(),
	}
	if err := h.deps.Store.SaveUser(ctx, user); err != nil {
		log.ErrorContext(ctx, "Failed to save new user", "error", err, "chat_id", chatID)
	}
}

// mainMenuKeyboard builds the persistent reply keyboard attached to the
// welcome message. The buttons send their label as plain text.
func mainMenuKeyboard() models.ReplyMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{
				{Text: "weather"},
				{Text: "get random joke"},
			},
			{
				{Text: "register"},
				{Text: "check my data"},
				{Text: "delete my data"},
			},
		},
		ResizeKeyboard: true,
	}
}
