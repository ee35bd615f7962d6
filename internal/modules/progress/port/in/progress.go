package in

import (
	"context"

	"fitx/internal/modules/progress/dto"
)

type Usecase interface {
	Summarize(ctx context.Context, input dto.SummaryInput) (dto.SummaryOutput, error)
	Report(ctx context.Context, input dto.SummaryInput) (dto.ReportOutput, error)
	ExportReport(ctx context.Context, input dto.SummaryInput) (dto.ExportReportOutput, error)
}
