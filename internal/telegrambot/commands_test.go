package telegrambot

import (
	"errors"
	"reflect"
	"testing"

	apperrors "fitx/internal/platform/errors"
)

func TestParseWorkout(t *testing.T) {
	t.Parallel()
	cmd, err := Parse("workout", "trail run 45 high 520")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Command{Kind: KindWorkout, Exercise: "trail run", Minutes: 45, Intensity: "high", Calories: 520}
	if !reflect.DeepEqual(cmd, want) {
		t.Fatalf("got %+v, want %+v", cmd, want)
	}
}

func TestParseMeal(t *testing.T) {
	t.Parallel()
	cmd, err := Parse("meal", "breakfast 420 oats, banana ,, coffee")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.MealType != "breakfast" || cmd.Calories != 420 || !reflect.DeepEqual(cmd.Items, []string{"oats", "banana", "coffee"}) {
		t.Fatalf("unexpected meal: %+v", cmd)
	}
	bare, err := Parse("meal", "snack 90")
	if err != nil || len(bare.Items) != 0 || bare.Items == nil {
		t.Fatalf("expected empty item list, got %+v %v", bare, err)
	}
}

func TestParseSummary(t *testing.T) {
	t.Parallel()
	cmd, err := Parse("summary", "")
	if err != nil || cmd.Days != 7 {
		t.Fatalf("default summary: %+v %v", cmd, err)
	}
	cmd, err = Parse("summary", "30")
	if err != nil || cmd.Days != 30 {
		t.Fatalf("summary 30: %+v %v", cmd, err)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()
	cases := []struct{ name, args string }{
		{"workout", "run 30 high"},
		{"workout", "run thirty high 300"},
		{"workout", "run 30 high lots"},
		{"meal", "lunch"},
		{"meal", "lunch many soup"},
		{"summary", "week"},
		{"dance", ""},
	}
	for _, tc := range cases {
		if _, err := Parse(tc.name, tc.args); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("Parse(%q, %q) = %v, want invalid argument", tc.name, tc.args, err)
		}
	}
}
