package handlers_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/mrlang/heraldbot/internal/config"
	"github.com/mrlang/heraldbot/internal/database"
	"github.com/mrlang/heraldbot/internal/telegram"
)

// sentMessage records one SendText call made against the fake gateway.
type sentMessage struct {
	ChatID   int64
	Text     string
	Keyboard models.ReplyMarkup
}

// editedMessage records one EditText call made against the fake gateway.
type editedMessage struct {
	ChatID    int64
	MessageID int
	Text      string
}

// fakeGateway is an in-memory Gateway implementation that records outbound
// calls. Sends to chat IDs listed in failChats return an error.
type fakeGateway struct {
	mu        sync.Mutex
	sent      []sentMessage
	edits     []editedMessage
	commands  []telegram.Command
	failChats map[int64]bool
	nextMsgID int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{failChats: make(map[int64]bool)}
}

func (g *fakeGateway) SendText(ctx context.Context, chatID int64, text string, keyboard models.ReplyMarkup) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failChats[chatID] {
		return 0, fmt.Errorf("simulated send failure for chat %d", chatID)
	}
	g.sent = append(g.sent, sentMessage{ChatID: chatID, Text: text, Keyboard: keyboard})
	g.nextMsgID++
	return g.nextMsgID, nil
}

func (g *fakeGateway) EditText(ctx context.Context, chatID int64, messageID int, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failChats[chatID] {
		return fmt.Errorf("simulated edit failure for chat %d", chatID)
	}
	g.edits = append(g.edits, editedMessage{ChatID: chatID, MessageID: messageID, Text: text})
	return nil
}

func (g *fakeGateway) RegisterCommands(ctx context.Context, commands []telegram.Command) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.commands = append([]telegram.Command(nil), commands...)
	return nil
}

// fakeStore is an in-memory Store implementation keyed by chat ID.
type fakeStore struct {
	mu            sync.Mutex
	users         map[int64]database.User
	announcements []database.Announcement
	saveCalls     int
	failAll       bool
	maintained    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int64]database.User)}
}

func (s *fakeStore) Ping(ctx context.Context) error { return nil }

func (s *fakeStore) SaveUser(ctx context.Context, user *database.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll {
		return fmt.Errorf("simulated store failure")
	}
	s.saveCalls++
	if _, exists := s.users[user.ChatID]; exists {
		return nil
	}
	s.users[user.ChatID] = *user
	return nil
}

func (s *fakeStore) UserExists(ctx context.Context, chatID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll {
		return false, fmt.Errorf("simulated store failure")
	}
	_, exists := s.users[chatID]
	return exists, nil
}

func (s *fakeStore) GetUser(ctx context.Context, chatID int64) (*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll {
		return nil, fmt.Errorf("simulated store failure")
	}
	user, exists := s.users[chatID]
	if !exists {
		return nil, nil
	}
	return &user, nil
}

func (s *fakeStore) DeleteUser(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll {
		return fmt.Errorf("simulated store failure")
	}
	delete(s.users, chatID)
	return nil
}

func (s *fakeStore) GetAllUsers(ctx context.Context) ([]database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll {
		return nil, fmt.Errorf("simulated store failure")
	}
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	// Ordered by chat ID, like the real store.
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	users := make([]database.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *fakeStore) GetAllAnnouncements(ctx context.Context) ([]database.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll {
		return nil, fmt.Errorf("simulated store failure")
	}
	return append([]database.Announcement(nil), s.announcements...), nil
}

func (s *fakeStore) RunMaintenance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll {
		return fmt.Errorf("simulated store failure")
	}
	s.maintained = true
	return nil
}

// testConfig builds a configuration with fixed texts so tests can assert
// exact replies.
func testConfig() *config.Config {
	return &config.Config{
		Telegram: config.TelegramConfig{
			Token:          "test-token",
			OperatorID:     42,
			RequestTimeout: time.Second,
		},
		Messages: config.MessagesConfig{
			Welcome:           "Hi, {firstname}, nice to meet you!:heart_eyes:",
			Help:              "help text",
			NotRecognized:     "Sorry, command was not recognized",
			RegisterPrompt:    "Do you really want to register?",
			RegisterConfirmed: "You pressed Yes button!",
			RegisterDeclined:  "You pressed No button!",
			ProvideMessage:    "Please provide a message to send.",
			MyDataEmpty:       "No data is stored about you yet. Send /start to register.",
			DataDeleted:       "Your stored data has been deleted.",
		},
	}
}

// textUpdate builds a plain text message update.
func textUpdate(chatID, userID int64, firstName, text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   10,
			Text: text,
			Chat: models.Chat{ID: chatID},
			From: &models.User{ID: userID, FirstName: firstName, LastName: "Lovelace", Username: "ada"},
		},
	}
}

// callbackUpdate builds a callback query update for a button press.
func callbackUpdate(chatID int64, messageID int, userID int64, token string) *models.Update {
	return &models.Update{
		ID: 2,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: userID},
			Data: token,
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID:   messageID,
					Chat: models.Chat{ID: chatID},
				},
			},
		},
	}
}
