package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/mrlang/heraldbot/internal/bot/handlers"
	"github.com/mrlang/heraldbot/internal/database"
)

func seedUsers(store *fakeStore, chatIDs ...int64) {
	for _, id := range chatIDs {
		store.users[id] = database.User{ChatID: id, FirstName: "User", RegisteredAt: time.Now().UTC()}
	}
}

func TestBroadcastHandlerFansOutToAllUsers(t *testing.T) {
	t.Parallel()

	deps, store, gateway := newTestDeps()
	seedUsers(store, 200, 100)
	handler := handlers.NewBroadcastHandler(deps)

	operatorID := deps.Config.Telegram.OperatorID
	handler(context.Background(), nil, textUpdate(operatorID, operatorID, "Op", "/send Sale today! :heart_eyes:"))

	if len(gateway.sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(gateway.sent))
	}
	want := "Sale today! \U0001F60D"
	for i, chatID := range []int64{100, 200} {
		if gateway.sent[i].ChatID != chatID {
			t.Errorf("send %d went to chat %d, want %d", i, gateway.sent[i].ChatID, chatID)
		}
		if gateway.sent[i].Text != want {
			t.Errorf("send %d text = %q, want %q", i, gateway.sent[i].Text, want)
		}
	}
}

func TestBroadcastHandlerNonOperatorFallsThrough(t *testing.T) {
	t.Parallel()

	deps, store, gateway := newTestDeps()
	seedUsers(store, 100, 200)
	handler := handlers.NewBroadcastHandler(deps)

	handler(context.Background(), nil, textUpdate(300, 300, "Eve", "/send free stuff"))

	if len(gateway.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(gateway.sent))
	}
	if gateway.sent[0].ChatID != 300 {
		t.Errorf("reply went to chat %d, want 300", gateway.sent[0].ChatID)
	}
	if gateway.sent[0].Text != deps.Config.Messages.NotRecognized {
		t.Errorf("reply = %q, want %q", gateway.sent[0].Text, deps.Config.Messages.NotRecognized)
	}
}

func TestBroadcastHandlerRejectsMalformedCommand(t *testing.T) {
	t.Parallel()

	deps, store, gateway := newTestDeps()
	seedUsers(store, 100)
	handler := handlers.NewBroadcastHandler(deps)

	operatorID := deps.Config.Telegram.OperatorID
	handler(context.Background(), nil, textUpdate(operatorID, operatorID, "Op", "/sendfoo bar"))

	if len(gateway.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(gateway.sent))
	}
	if gateway.sent[0].Text != deps.Config.Messages.NotRecognized {
		t.Errorf("reply = %q, want %q", gateway.sent[0].Text, deps.Config.Messages.NotRecognized)
	}
}

func TestBroadcastHandlerEmptyPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "bare command", text: "/send"},
		{name: "command with only spaces", text: "/send   "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			deps, store, gateway := newTestDeps()
			seedUsers(store, 100)
			handler := handlers.NewBroadcastHandler(deps)

			operatorID := deps.Config.Telegram.OperatorID
			handler(context.Background(), nil, textUpdate(operatorID, operatorID, "Op", tc.text))

			if len(gateway.sent) != 1 {
				t.Fatalf("expected 1 send, got %d", len(gateway.sent))
			}
			if gateway.sent[0].ChatID != operatorID {
				t.Errorf("reply went to chat %d, want operator %d", gateway.sent[0].ChatID, operatorID)
			}
			if gateway.sent[0].Text != deps.Config.Messages.ProvideMessage {
				t.Errorf("reply = %q, want %q", gateway.sent[0].Text, deps.Config.Messages.ProvideMessage)
			}
		})
	}
}

func TestBroadcastHandlerContinuesAfterSendFailure(t *testing.T) {
	t.Parallel()

	deps, store, gateway := newTestDeps()
	seedUsers(store, 100, 200)
	gateway.failChats[100] = true
	handler := handlers.NewBroadcastHandler(deps)

	operatorID := deps.Config.Telegram.OperatorID
	handler(context.Background(), nil, textUpdate(operatorID, operatorID, "Op", "/send hello"))

	if len(gateway.sent) != 1 {
		t.Fatalf("expected the second recipient to still receive the message, got %d sends", len(gateway.sent))
	}
	if gateway.sent[0].ChatID != 200 {
		t.Errorf("surviving send went to chat %d, want 200", gateway.sent[0].ChatID)
	}
}

func TestMyDataHandler(t *testing.T) {
	t.Parallel()

	t.Run("stored record is rendered", func(t *testing.T) {
		t.Parallel()

		deps, store, gateway := newTestDeps()
		store.users[100] = database.User{
			ChatID:       100,
			FirstName:    "Ada",
			LastName:     "Lovelace",
			UserName:     "ada",
			RegisteredAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}
		handler := handlers.NewMyDataHandler(deps)

		handler(context.Background(), nil, textUpdate(100, 100, "Ada", "/mydata"))

		if len(gateway.sent) != 1 {
			t.Fatalf("expected 1 send, got %d", len(gateway.sent))
		}
		want := "First name: Ada\nLast name: Lovelace\nUsername: ada\nRegistered at: Fri, 01 Mar 2024 12:00:00 UTC"
		if gateway.sent[0].Text != want {
			t.Errorf("reply = %q, want %q", gateway.sent[0].Text, want)
		}
	})

	t.Run("unknown user gets the empty-data reply", func(t *testing.T) {
		t.Parallel()

		deps, _, gateway := newTestDeps()
		handler := handlers.NewMyDataHandler(deps)

		handler(context.Background(), nil, textUpdate(100, 100, "Ada", "/mydata"))

		if len(gateway.sent) != 1 {
			t.Fatalf("expected 1 send, got %d", len(gateway.sent))
		}
		if gateway.sent[0].Text != deps.Config.Messages.MyDataEmpty {
			t.Errorf("reply = %q, want %q", gateway.sent[0].Text, deps.Config.Messages.MyDataEmpty)
		}
	})
}

func TestDeleteDataHandler(t *testing.T) {
	t.Parallel()

	deps, store, gateway := newTestDeps()
	seedUsers(store, 100)
	handler := handlers.NewDeleteDataHandler(deps)

	handler(context.Background(), nil, textUpdate(100, 100, "Ada", "/deletedata"))

	if _, exists := store.users[100]; exists {
		t.Error("expected user record to be deleted")
	}
	if len(gateway.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(gateway.sent))
	}
	if gateway.sent[0].Text != deps.Config.Messages.DataDeleted {
		t.Errorf("reply = %q, want %q", gateway.sent[0].Text, deps.Config.Messages.DataDeleted)
	}
}
