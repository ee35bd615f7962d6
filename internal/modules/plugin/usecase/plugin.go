package usecase

import (
	"context"

	"fitx/internal/modules/plugin/dto"
	pluginin "fitx/internal/modules/plugin/port/in"
	"fitx/internal/modules/plugin/service"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context, name string) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx, name)
}

func (i *Interactor) CollectInsights(ctx context.Context, input dto.InsightsInput) (dto.InsightsOutput, error) {
	return i.svc.CollectInsights(ctx, input)
}
