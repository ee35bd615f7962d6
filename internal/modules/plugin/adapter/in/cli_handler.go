package in

import (
	"context"

	"fitx/internal/modules/plugin/dto"
	pluginin "fitx/internal/modules/plugin/port/in"
)

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context, name string) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx, name)
}
