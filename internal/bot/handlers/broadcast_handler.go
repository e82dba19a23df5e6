package handlers

import (
	"context"
	"strings"

	"github.com/enescakir/emoji"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewBroadcastHandler returns a handler for the operator's /send command.
// The payload after the command, with emoji shortcodes expanded, is sent
// individually to every stored user. Any other sender gets the default
// not-recognized reply, exactly as if the command set didn't contain /send.
func NewBroadcastHandler(deps HandlerDeps) bot.HandlerFunc {
	return broadcastHandler{deps}.Handle
}

// broadcastHandler processes the operator broadcast trigger.
type broadcastHandler struct {
	deps HandlerDeps
}

func (h broadcastHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "broadcast")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Broadcast handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	from := update.Message.From

	payload, ok := splitBroadcastPayload(update.Message.Text)
	if !ok || from.ID != h.deps.Config.Telegram.OperatorID {
		// Not the operator, or not actually the /send command (e.g. "/sendfoo"):
		// treat it like any unrecognized text.
		if from.ID != h.deps.Config.Telegram.OperatorID {
			log.WarnContext(ctx, "Broadcast trigger from non-operator", "chat_id", chatID, "user_id", from.ID)
		}
		if _, err := h.deps.Gateway.SendText(ctx, chatID, h.deps.Config.Messages.NotRecognized, nil); err != nil {
			log.ErrorContext(ctx, "Failed to send not-recognized reply", "error", err, "chat_id", chatID)
		}
		return
	}

	if payload == "" {
		if _, err := h.deps.Gateway.SendText(ctx, chatID, h.deps.Config.Messages.ProvideMessage, nil); err != nil {
			log.ErrorContext(ctx, "Failed to send provide-message reply", "error", err, "chat_id", chatID)
		}
		return
	}

	text := emoji.Parse(payload)
	log.InfoContext(ctx, "Broadcasting operator message", "chat_id", chatID)

	users, err := h.deps.Store.GetAllUsers(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load users for broadcast", "error", err)
		return
	}

	sent := 0
	for _, user := range users {
		if _, err := h.deps.Gateway.SendText(ctx, user.ChatID, text, nil); err != nil {
			log.ErrorContext(ctx, "Failed to send broadcast message", "error", err, "chat_id", user.ChatID)
			continue
		}
		sent++
	}
	log.InfoContext(ctx, "Operator broadcast finished", "recipients", len(users), "sent", sent)
}

// splitBroadcastPayload extracts the text after the /send command. The second
// return value is false when the text is not the /send command at all (the
// prefix match also catches strings like "/sendfoo").
func splitBroadcastPayload(text string) (string, bool) {
	rest, found := strings.CutPrefix(text, "/send")
	if !found {
		return "", false
	}
	if rest == "" {
		return "", true
	}
	if !strings.HasPrefix(rest, " ") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
