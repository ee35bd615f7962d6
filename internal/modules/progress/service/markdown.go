package service

import (
	"fmt"
	"strings"

	"fitx/internal/modules/progress/domain"
)

// RenderMarkdown renders the report body without frontmatter.
func RenderMarkdown(s domain.Summary) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# Progress report: %s\n\n", s.Period)
	fmt.Fprintf(&b, "_%s, generated %s_\n\n", s.UserID, s.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Workouts\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Completed | %d of %d |\n", s.Workouts.Completed, s.Workouts.Target)
	fmt.Fprintf(&b, "| Active minutes | %d |\n", s.Workouts.TotalActiveMinutes)
	fmt.Fprintf(&b, "| Average duration | %d min |\n", s.Workouts.AverageWorkoutDuration)
	fmt.Fprintf(&b, "| Calories burned | %d |\n", s.Workouts.TotalCaloriesBurned)
	fmt.Fprintf(&b, "| Calories per workout | %d |\n\n", s.Workouts.AverageCaloriesPerWorkout)

	b.WriteString("## Consistency\n\n")
	fmt.Fprintf(&b, "- **%d%%** (%s), %s\n", s.Consistency.Percent, s.Consistency.Rating, s.Consistency.Frequency)
	fmt.Fprintf(&b, "- Goal progress **%d%%**: %s\n", s.Goal.Rounded(), s.Goal.Status)
	fmt.Fprintf(&b, "- %s\n\n", s.Goal.Message)

	b.WriteString("## Nutrition\n\n")
	fmt.Fprintf(&b, "- Meals logged: %d\n", s.Nutrition.MealsLogged)
	fmt.Fprintf(&b, "- Calories consumed: %d (%d per day)\n", s.Nutrition.CaloriesConsumed, s.Nutrition.AverageCaloriesPerDay)
	fmt.Fprintf(&b, "- Net calories: %d\n\n", s.Nutrition.NetCalories)

	b.WriteString("## Insights\n\n")
	for _, line := range s.Insights {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n## Recommendations\n\n")
	for _, line := range s.Recommendations {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n## Next milestone\n\n")
	fmt.Fprintf(&b, "%s: %d/%d. %s\n", s.Milestone.Label, s.Milestone.Current, s.Milestone.Target, s.Milestone.Message)
	return b.String()
}
