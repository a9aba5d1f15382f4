package catalog

import (
	"context"
	"errors"

	"agencydesk/internal/domain"
	"agencydesk/internal/repository"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not_found")

type Service struct {
	clients  *repository.ClientRepository
	services *repository.ServiceRepository
}

func NewService(clients *repository.ClientRepository, services *repository.ServiceRepository) *Service {
	return &Service{clients: clients, services: services}
}

func (s *Service) CreateClient(ctx context.Context, req CreateClientRequest) (*domain.Client, error) {
	c := &domain.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateClient(ctx context.Context, id int64, req UpdateClientRequest) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Company != nil {
		c.Company = *req.Company
	}

	if err := s.clients.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.clients.List(ctx, limit, offset)
}

func (s *Service) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	svc := &domain.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}
