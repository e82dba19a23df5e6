package database

import (
	"fmt"
	"time"
)

// User represents a registered bot user. A record is created the first time a
// chat sends /start and is never updated afterwards; chat_id is the primary
// key, so there is at most one record per chat.
type User struct {
	ChatID       int64     `db:"chat_id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	UserName     string    `db:"user_name"`
	RegisteredAt time.Time `db:"registered_at"`
}

// String renders the user record for logs.
func (u User) String() string {
	return fmt.Sprintf("User{chatId=%d, firstName=%q, lastName=%q, userName=%q, registeredAt=%s}",
		u.ChatID, u.FirstName, u.LastName, u.UserName, u.RegisteredAt.Format(time.RFC3339))
}

// Announcement represents one operator-authored broadcast text. Rows are
// managed administratively outside the bot; the bot only reads them.
type Announcement struct {
	ID   int64  `db:"id"`
	Text string `db:"text"`
}
