package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/xuri/excelize/v2"

	"fitx/internal/modules/activity/domain"
	activityout "fitx/internal/modules/activity/port/out"
	"fitx/internal/platform/logging"
)

const (
	SheetWorkouts = "Workouts"
	SheetMeals    = "Meals"
)

var (
	workoutHeader = []any{"Timestamp", "Exercise", "Duration (min)", "Intensity", "Calories", "Calories/min"}
	mealHeader    = []any{"Timestamp", "Meal", "Items", "Item count", "Calories", "Size"}
)

type XLSXWorkbookWriter struct {
	logger hclog.Logger
}

func NewXLSXWorkbookWriter(logger hclog.Logger) activityout.WorkbookWriter {
	return &XLSXWorkbookWriter{logger: logging.OrDiscard(logger)}
}

func (w *XLSXWorkbookWriter) Write(ctx context.Context, path string, history domain.History) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("close workbook", "path", path, "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetWorkouts); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetMeals); err != nil {
		return fmt.Errorf("create meals sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F4E79"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	workouts := make([][]any, 0, len(history.Workouts))
	for _, e := range history.Workouts {
		workouts = append(workouts, []any{
			e.Timestamp.UTC().Format(time.RFC3339), e.Exercise, e.DurationMinutes, string(e.Intensity), e.CaloriesBurned, e.CaloriesPerMinute,
		})
	}
	if err := writeSheet(f, SheetWorkouts, workoutHeader, workouts, headerStyle); err != nil {
		return err
	}

	meals := make([][]any, 0, len(history.Meals))
	for _, e := range history.Meals {
		meals = append(meals, []any{
			e.Timestamp.UTC().Format(time.RFC3339), string(e.MealType), strings.Join(e.Items, ", "), e.ItemCount, e.CaloriesTotal, string(e.Size),
		})
	}
	if err := writeSheet(f, SheetMeals, mealHeader, meals, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return fmt.Errorf("%s column width: %w", sheet, err)
	}
	return nil
}
