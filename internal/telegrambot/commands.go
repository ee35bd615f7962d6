package telegrambot

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "fitx/internal/platform/errors"
)

type Kind string

const (
	KindWorkout Kind = "workout"
	KindMeal    Kind = "meal"
	KindSummary Kind = "summary"
	KindHelp    Kind = "help"
)

const defaultSummaryDays = 7

const helpText = `Commands:
/workout <exercise> <minutes> <intensity> <calories>
/meal <type> <calories> [item, item...]
/summary [days]
/help`

type Command struct {
	Kind Kind

	Exercise  string
	Minutes   int
	Intensity string

	MealType string
	Items    []string

	Calories int
	Days     int
}

// Parse interprets a bot command name and its argument string.
// Intensity and meal type are passed through; the recorder normalizes them.
func Parse(name, args string) (Command, error) {
	fields := strings.Fields(args)
	switch strings.ToLower(name) {
	case "workout":
		if len(fields) < 4 {
			return Command{}, usage("/workout <exercise> <minutes> <intensity> <calories>")
		}
		n := len(fields)
		minutes, err := strconv.Atoi(fields[n-3])
		if err != nil {
			return Command{}, usage("minutes must be a whole number")
		}
		calories, err := strconv.Atoi(fields[n-1])
		if err != nil {
			return Command{}, usage("calories must be a whole number")
		}
		return Command{
			Kind:      KindWorkout,
			Exercise:  strings.Join(fields[:n-3], " "),
			Minutes:   minutes,
			Intensity: fields[n-2],
			Calories:  calories,
		}, nil
	case "meal":
		if len(fields) < 2 {
			return Command{}, usage("/meal <type> <calories> [item, item...]")
		}
		calories, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, usage("calories must be a whole number")
		}
		return Command{
			Kind:     KindMeal,
			MealType: fields[0],
			Calories: calories,
			Items:    splitItems(strings.Join(fields[2:], " ")),
		}, nil
	case "summary":
		if len(fields) == 0 {
			return Command{Kind: KindSummary, Days: defaultSummaryDays}, nil
		}
		days, err := strconv.Atoi(fields[0])
		if err != nil {
			return Command{}, usage("days must be a whole number")
		}
		return Command{Kind: KindSummary, Days: days}, nil
	case "help", "start":
		return Command{Kind: KindHelp}, nil
	default:
		return Command{}, fmt.Errorf("%w: unknown command /%s", apperrors.ErrInvalidArgument, name)
	}
}

func splitItems(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func usage(msg string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, msg)
}
