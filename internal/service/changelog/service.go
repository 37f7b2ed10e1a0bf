package changelog

import (
	"context"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/repository"
)

type Service interface {
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.ChangeLog], error)
	ListByChassis(ctx context.Context, chassisNumber string, params domain.PaginationParams) (domain.PaginatedResponse[domain.ChangeLog], error)
}

type service struct {
	changeLogRepo repository.ChangeLogRepository
}

func NewService(changeLogRepo repository.ChangeLogRepository) Service {
	return &service{changeLogRepo: changeLogRepo}
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.ChangeLog], error) {
	logs, total, err := s.changeLogRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ChangeLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}

func (s *service) ListByChassis(ctx context.Context, chassisNumber string, params domain.PaginationParams) (domain.PaginatedResponse[domain.ChangeLog], error) {
	logs, total, err := s.changeLogRepo.ListByChassis(ctx, chassisNumber, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ChangeLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}
