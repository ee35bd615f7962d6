package telegrambot

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	activityout "fitx/internal/modules/activity/adapter/out"
	activityservice "fitx/internal/modules/activity/service"
	activityusecase "fitx/internal/modules/activity/usecase"
	progressout "fitx/internal/modules/progress/adapter/out"
	progressservice "fitx/internal/modules/progress/service"
	progressusecase "fitx/internal/modules/progress/usecase"
	"fitx/internal/platform/clock"
	"fitx/internal/platform/id"
	"fitx/internal/platform/retry"
)

type fakeAPI struct {
	updates chan tgbotapi.Update
	sent    chan tgbotapi.Chattable
	stopped bool
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return f.updates }

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent <- c
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) StopReceivingUpdates() { f.stopped = true }

func newBot(api API) *Bot {
	clk := clock.Fixed{At: time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)}
	activity := activityusecase.NewInteractor(activityservice.NewRecorder(clk), activityout.NewMemoryEventStore(), nil, retry.Default(), nil)
	progress := progressusecase.NewInteractor(progressservice.NewSummarizer(clk, id.UUID{}, progressout.NewActivityHistorySource(activity), nil, nil, nil))
	return New(api, activity, progress, nil)
}

func TestReplyLogsPerChatUser(t *testing.T) {
	t.Parallel()
	bot := newBot(nil)
	ctx := context.Background()

	reply := bot.Reply(ctx, 42, "workout", "swim 40 very_high 480")
	if !strings.Contains(reply, "very high intensity swim") || !strings.Contains(reply, "12.0 kcal/min") {
		t.Fatalf("unexpected workout reply: %q", reply)
	}
	reply = bot.Reply(ctx, 42, "meal", "dinner 900 steak, potatoes")
	if !strings.Contains(reply, "Size: large") {
		t.Fatalf("unexpected meal reply: %q", reply)
	}
	summary := bot.Reply(ctx, 42, "summary", "1")
	if !strings.Contains(summary, "Workouts: 1 of 1") || !strings.Contains(summary, "Consistency: 100%, Excellent") {
		t.Fatalf("unexpected summary: %q", summary)
	}
	other := bot.Reply(ctx, 7, "summary", "1")
	if !strings.Contains(other, "Workouts: 0 of 1") {
		t.Fatalf("chats must not share history: %q", other)
	}
}

func TestReplyExplainsBadInput(t *testing.T) {
	t.Parallel()
	bot := newBot(nil)
	reply := bot.Reply(context.Background(), 1, "summary", "0")
	if !strings.HasPrefix(reply, "⚠️") || !strings.Contains(reply, "/workout") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if help := bot.Reply(context.Background(), 1, "help", ""); help != helpText {
		t.Fatalf("unexpected help: %q", help)
	}
}

func TestRunAnswersCommandsUntilCancelled(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 1), sent: make(chan tgbotapi.Chattable, 1)}
	bot := newBot(api)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	api.updates <- tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     "/help",
		Chat:     &tgbotapi.Chat{ID: 5},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}},
	}}
	select {
	case c := <-api.sent:
		msg, ok := c.(tgbotapi.MessageConfig)
		if !ok || msg.ChatID != 5 || msg.Text != helpText {
			t.Fatalf("unexpected reply: %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no reply sent")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	if !api.stopped {
		t.Fatalf("expected polling to stop")
	}
}
