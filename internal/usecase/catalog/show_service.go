package catalog

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceLookup interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
}

type ShowService struct {
	services ServiceLookup
}

func NewShowService(services ServiceLookup) *ShowService {
	return &ShowService{services: services}
}

// Execute returns an active service; retired services are not found.
func (uc *ShowService) Execute(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := uc.services.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, httperr.ErrEntityNotFound("service")
	}
	return svc, nil
}
