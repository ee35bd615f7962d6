package in

import (
	"context"

	"fitx/internal/modules/progress/dto"
	progressin "fitx/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
	userID  string
}

func NewCLIHandler(usecase progressin.Usecase, userID string) CLIHandler {
	return CLIHandler{usecase: usecase, userID: userID}
}

func (h CLIHandler) ForUser(userID string) CLIHandler {
	h.userID = userID
	return h
}

func (h CLIHandler) Summarize(ctx context.Context, windowDays int) (dto.SummaryOutput, error) {
	return h.usecase.Summarize(ctx, dto.SummaryInput{UserID: h.userID, WindowDays: windowDays})
}

func (h CLIHandler) Report(ctx context.Context, windowDays int) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx, dto.SummaryInput{UserID: h.userID, WindowDays: windowDays})
}

func (h CLIHandler) ExportReport(ctx context.Context, windowDays int) (dto.ExportReportOutput, error) {
	return h.usecase.ExportReport(ctx, dto.SummaryInput{UserID: h.userID, WindowDays: windowDays})
}
