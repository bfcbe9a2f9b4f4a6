package customers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const defaultListLimit = 100

// Service администрирует профили клиентов витрины.
type Service struct {
	repo   domain.CustomerRepository
	logger *log.Entry
}

// NewService конструирует сервис клиентов.
func NewService(repo domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "customers")
	}
	return &Service{repo: repo, logger: logger}
}

// List возвращает профили, новые первыми.
func (s *Service) List(_ context.Context, limit int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(limit)
}

// Get возвращает профиль по идентификатору.
func (s *Service) Get(_ context.Context, id string) (domain.Customer, error) {
	return s.repo.Get(id)
}

// Create валидирует и сохраняет новый профиль.
func (s *Service) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if errs := customer.ValidateInvariants(); len(errs) > 0 {
		return domain.Customer{}, errors.Join(errs...)
	}

	if err := s.repo.Create(customer); err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.logger.WithField("customer_id", customer.ID).Info("customer created")
	return customer, nil
}

// Update перезаписывает редактируемые поля профиля.
func (s *Service) Update(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	current, err := s.repo.Get(customer.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	customer.CreatedAt = current.CreatedAt
	customer.UpdatedAt = time.Now().UTC()

	if errs := customer.ValidateInvariants(); len(errs) > 0 {
		return domain.Customer{}, errors.Join(errs...)
	}

	if err := s.repo.Update(customer); err != nil {
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	s.logger.WithField("customer_id", customer.ID).Info("customer updated")
	return customer, nil
}

// Delete удаляет профиль клиента.
func (s *Service) Delete(_ context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("customer_id", id).Info("customer deleted")
	return nil
}
