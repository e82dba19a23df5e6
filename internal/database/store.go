package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveUser inserts a new user record. Inserting a chat ID that already
	// exists is a no-op, not an error: the primary key absorbs races between
	// concurrent /start events from the same chat.
	SaveUser(ctx context.Context, user *User) error

	// UserExists reports whether a user record exists for the given chat ID.
	UserExists(ctx context.Context, chatID int64) (bool, error)

	// GetUser retrieves a user record by chat ID. Returns nil, nil if not found.
	GetUser(ctx context.Context, chatID int64) (*User, error)

	// DeleteUser removes the user record for the given chat ID, if any.
	DeleteUser(ctx context.Context, chatID int64) error

	// GetAllUsers retrieves every user record, ordered by chat ID.
	GetAllUsers(ctx context.Context) ([]User, error)

	// GetAllAnnouncements retrieves every announcement, ordered by ID.
	GetAllAnnouncements(ctx context.Context) ([]Announcement, error)

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveUser inserts a new user record, ignoring duplicates by chat ID.
func (s *sqlxStore) SaveUser(ctx context.Context, user *User) error {
	if user == nil {
		return fmt.Errorf("cannot save nil user")
	}
	if user.ChatID == 0 {
		return fmt.Errorf("user must have a non-zero chat_id")
	}
	if user.RegisteredAt.IsZero() {
		return fmt.Errorf("user must have a non-zero registered_at")
	}

	query := `
        INSERT INTO users (chat_id, first_name, last_name, user_name, registered_at)
        VALUES (:chat_id, :first_name, :last_name, :user_name, :registered_at)
        ON CONFLICT (chat_id) DO NOTHING;
    `

	result, err := s.db.NamedExecContext(ctx, query, user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving user", "chat_id", user.ChatID, "error", err)
		return fmt.Errorf("failed to save user (chat %d): %w", user.ChatID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		s.logger.DebugContext(ctx, "User already exists, insert skipped", "chat_id", user.ChatID)
		return nil
	}

	s.logger.InfoContext(ctx, "New user saved", "user", user.String())
	return nil
}

// UserExists reports whether a user record exists for the given chat ID.
func (s *sqlxStore) UserExists(ctx context.Context, chatID int64) (bool, error) {
	if chatID == 0 {
		return false, fmt.Errorf("chat_id cannot be zero")
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE chat_id = ?);`
	if err := s.db.GetContext(ctx, &exists, query, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error checking user existence", "chat_id", chatID, "error", err)
		return false, fmt.Errorf("failed to check user existence (chat %d): %w", chatID, err)
	}
	return exists, nil
}

// GetUser retrieves a user record by chat ID. Returns nil, nil if not found.
func (s *sqlxStore) GetUser(ctx context.Context, chatID int64) (*User, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	var user User
	query := `
        SELECT chat_id, first_name, last_name, user_name, registered_at
        FROM users
        WHERE chat_id = ?;
    `
	err := s.db.GetContext(ctx, &user, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting user", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get user (chat %d): %w", chatID, err)
	}
	return &user, nil
}

// DeleteUser removes the user record for the given chat ID, if any.
func (s *sqlxStore) DeleteUser(ctx context.Context, chatID int64) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE chat_id = ?;`, chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting user", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to delete user (chat %d): %w", chatID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil {
		s.logger.InfoContext(ctx, "User delete executed", "chat_id", chatID, "rows_affected", affected)
	}
	return nil
}

// GetAllUsers retrieves every user record, ordered by chat ID.
func (s *sqlxStore) GetAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	query := `
        SELECT chat_id, first_name, last_name, user_name, registered_at
        FROM users
        ORDER BY chat_id;
    `
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		s.logger.ErrorContext(ctx, "Error getting all users", "error", err)
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched all users", "count", len(users))
	return users, nil
}

// GetAllAnnouncements retrieves every announcement, ordered by ID.
func (s *sqlxStore) GetAllAnnouncements(ctx context.Context) ([]Announcement, error) {
	var announcements []Announcement
	query := `SELECT id, text FROM announcements ORDER BY id;`
	if err := s.db.SelectContext(ctx, &announcements, query); err != nil {
		s.logger.ErrorContext(ctx, "Error getting announcements", "error", err)
		return nil, fmt.Errorf("failed to get announcements: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched all announcements", "count", len(announcements))
	return announcements, nil
}

// RunMaintenance performs database maintenance tasks like VACUUM.
func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "Error running VACUUM", "error", err)
		return fmt.Errorf("failed to run maintenance: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}
