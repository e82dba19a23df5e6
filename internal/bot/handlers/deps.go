// Package handlers contains Telegram bot command, message, and callback
// handlers, along with their registration logic.
package handlers

import (
	"log/slog"

	"github.com/mrlang/heraldbot/internal/config"
	"github.com/mrlang/heraldbot/internal/database"
	"github.com/mrlang/heraldbot/internal/telegram"
)

// HandlerDeps provides dependencies for Telegram handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   database.Store
	Gateway telegram.Gateway
}
