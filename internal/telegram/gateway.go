package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Command describes one entry of the bot command menu.
type Command struct {
	Name        string
	Description string
}

// Gateway is the outbound interface to the messaging platform. Every call is
// a network round trip bounded by the gateway's request timeout; callers are
// expected to log failures and continue rather than abort their loop.
type Gateway interface {
	// SendText sends a text message to a chat, optionally attaching a
	// keyboard, and returns the ID of the sent message.
	SendText(ctx context.Context, chatID int64, text string, keyboard models.ReplyMarkup) (int, error)

	// EditText replaces the text of an existing message.
	EditText(ctx context.Context, chatID int64, messageID int, text string) error

	// RegisterCommands publishes the bot command menu. Invoked once at startup.
	RegisterCommands(ctx context.Context, commands []Command) error
}

// BotGateway implements Gateway on top of a go-telegram/bot instance.
type BotGateway struct {
	bot     *bot.Bot
	timeout time.Duration
	logger  *slog.Logger
}

// NewGateway creates a gateway with the given per-call timeout. The bot
// instance is attached separately with Attach, after bot construction: the
// default handler needs the gateway before the bot exists.
func NewGateway(timeout time.Duration, logger *slog.Logger) *BotGateway {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BotGateway{
		timeout: timeout,
		logger:  logger.With("component", "gateway"),
	}
}

// Attach binds the gateway to a bot instance. Must be called before the bot
// starts processing updates.
func (g *BotGateway) Attach(b *bot.Bot) {
	g.bot = b
}

// SendText sends a text message to a chat and returns the sent message ID.
func (g *BotGateway) SendText(ctx context.Context, chatID int64, text string, keyboard models.ReplyMarkup) (int, error) {
	if g.bot == nil {
		return 0, fmt.Errorf("gateway is not attached to a bot instance")
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	msg, err := g.bot.SendMessage(callCtx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return msg.ID, nil
}

// EditText replaces the text of an existing message.
func (g *BotGateway) EditText(ctx context.Context, chatID int64, messageID int, text string) error {
	if g.bot == nil {
		return fmt.Errorf("gateway is not attached to a bot instance")
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.bot.EditMessageText(callCtx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("failed to edit message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

// RegisterCommands publishes the bot command menu.
func (g *BotGateway) RegisterCommands(ctx context.Context, commands []Command) error {
	if g.bot == nil {
		return fmt.Errorf("gateway is not attached to a bot instance")
	}

	botCommands := make([]models.BotCommand, 0, len(commands))
	for _, c := range commands {
		botCommands = append(botCommands, models.BotCommand{
			Command:     c.Name,
			Description: c.Description,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ok, err := g.bot.SetMyCommands(callCtx, &bot.SetMyCommandsParams{Commands: botCommands})
	if err != nil {
		return fmt.Errorf("failed to register bot commands: %w", err)
	}
	if !ok {
		return fmt.Errorf("bot command registration was not confirmed")
	}

	g.logger.Info("Bot command menu registered", "count", len(botCommands))
	return nil
}
