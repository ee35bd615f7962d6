package telegrambot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	hclog "github.com/hashicorp/go-hclog"

	activitydto "fitx/internal/modules/activity/dto"
	activityin "fitx/internal/modules/activity/port/in"
	progressdto "fitx/internal/modules/progress/dto"
	progressin "fitx/internal/modules/progress/port/in"
	apperrors "fitx/internal/platform/errors"
	"fitx/internal/platform/logging"
)

const pollTimeoutSeconds = 30

// API is the subset of *tgbotapi.BotAPI the bot loop needs.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	StopReceivingUpdates()
}

type Bot struct {
	api      API
	activity activityin.Usecase
	progress progressin.Usecase
	logger   hclog.Logger
}

func Connect(token string) (*tgbotapi.BotAPI, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: telegram token is required", apperrors.ErrInvalidArgument)
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	return api, nil
}

func New(api API, activity activityin.Usecase, progress progressin.Usecase, logger hclog.Logger) *Bot {
	return &Bot{api: api, activity: activity, progress: progress, logger: logging.OrDiscard(logger)}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram bot polling")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			msg := update.Message
			reply := b.Reply(ctx, msg.Chat.ID, msg.Command(), msg.CommandArguments())
			if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
				b.logger.Warn("send reply", "chat", msg.Chat.ID, "error", err)
			}
		}
	}
}

func UserID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// Reply runs one command for the chat's user and renders the answer text.
func (b *Bot) Reply(ctx context.Context, chatID int64, name, args string) string {
	cmd, err := Parse(name, args)
	if err != nil {
		return b.errorText(err)
	}
	user := UserID(chatID)
	switch cmd.Kind {
	case KindWorkout:
		out, err := b.activity.LogWorkout(ctx, activitydto.LogWorkoutInput{
			UserID: user, Exercise: cmd.Exercise, DurationMinutes: cmd.Minutes, Intensity: cmd.Intensity, Calories: cmd.Calories,
		})
		if err != nil {
			return b.errorText(err)
		}
		return fmt.Sprintf("%s\n%d min, %s, %.1f kcal/min", out.Message, out.DurationMinutes, out.Intensity, out.CaloriesPerMinute)
	case KindMeal:
		out, err := b.activity.LogMeal(ctx, activitydto.LogMealInput{
			UserID: user, MealType: cmd.MealType, FoodItems: cmd.Items, Calories: cmd.Calories,
		})
		if err != nil {
			return b.errorText(err)
		}
		return fmt.Sprintf("%s\nSize: %s (%d kcal)\n%s", out.Message, out.MealSize, out.EstimatedCalories, out.TrackingNote)
	case KindSummary:
		out, err := b.progress.Summarize(ctx, progressdto.SummaryInput{UserID: user, WindowDays: cmd.Days})
		if err != nil {
			return b.errorText(err)
		}
		return SummaryText(out)
	default:
		return helpText
	}
}

func SummaryText(s progressdto.SummaryOutput) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "%s\n", s.Period)
	fmt.Fprintf(&b, "Workouts: %d of %d (%s)\n", s.WorkoutStats.WorkoutsCompleted, s.WorkoutStats.TargetWorkouts, s.Consistency.WorkoutFrequency)
	fmt.Fprintf(&b, "Consistency: %s, %s\n", s.Consistency.Percentage, s.Consistency.Rating)
	fmt.Fprintf(&b, "Goal progress: %s, %s\n", s.GoalProgress.Percentage, s.GoalProgress.Status)
	fmt.Fprintf(&b, "Calories: %d burned, %d eaten\n", s.WorkoutStats.TotalCaloriesBurned, s.Nutrition.CaloriesConsumed)
	for _, line := range s.Insights {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString(s.NextMilestone.Message)
	return b.String()
}

func (b *Bot) errorText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return fmt.Sprintf("⚠️ %v\n\n%s", err, helpText)
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		b.logger.Error("storage unavailable", "error", err)
		return "Storage is unavailable right now, please try again later."
	default:
		b.logger.Error("command failed", "error", err)
		return "Something went wrong, please try again."
	}
}
