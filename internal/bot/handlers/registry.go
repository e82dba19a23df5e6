package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/mrlang/heraldbot/internal/telegram"
)

// Callback tokens carried by the registration prompt's inline buttons. The
// dispatcher and the registration prompt are coupled only through these two
// well-known values.
const (
	YesButtonToken = "YES_BUTTON"
	NoButtonToken  = "NO_BUTTON"
)

// RegisterAllCommands initializes and returns a map of all bot handlers:
// the fixed command set, the operator broadcast trigger, and the two
// registration callback tokens. Commands match the message text exactly, so
// a command with trailing text falls through to the default handler.
func RegisterAllCommands(deps HandlerDeps) map[string]telegram.RegisteredHandler {
	handlers := make(map[string]telegram.RegisteredHandler)

	handlers["/start"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "/start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers["/help"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "/help",
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers["/register"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "/register",
		Handler:     NewRegisterHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers["/mydata"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "/mydata",
		Handler:     NewMyDataHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers["/deletedata"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "/deletedata",
		Handler:     NewDeleteDataHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}

	// The broadcast trigger takes arguments, so it matches by prefix; the
	// handler itself rejects non-operators and malformed payloads.
	handlers["/send"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "/send",
		Handler:     NewBroadcastHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	handlers[YesButtonToken] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     YesButtonToken,
		Handler:     NewRegisterCallbackHandler(deps, deps.Config.Messages.RegisterConfirmed),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers[NoButtonToken] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     NoButtonToken,
		Handler:     NewRegisterCallbackHandler(deps, deps.Config.Messages.RegisterDeclined),
		MatchType:   tgbot.MatchTypeExact,
	}

	return handlers
}
