// Package tasks implements the bot's scheduled tasks: the periodic
// announcement broadcast and database maintenance.
package tasks

import (
	"log/slog"

	"github.com/mrlang/heraldbot/internal/config"
	"github.com/mrlang/heraldbot/internal/database"
	"github.com/mrlang/heraldbot/internal/telegram"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   database.Store
	Gateway telegram.Gateway
}
