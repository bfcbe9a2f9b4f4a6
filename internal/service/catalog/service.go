package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Service отвечает за чтение и администрирование каталога товаров.
type Service struct {
	repo   domain.ProductRepository
	logger *log.Entry
}

// NewService конструирует сервис каталога.
func NewService(repo domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}
	return &Service{repo: repo, logger: logger}
}

// List возвращает товары по фильтру витрины.
func (s *Service) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.repo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get возвращает товар по идентификатору.
func (s *Service) Get(_ context.Context, id string) (domain.Product, error) {
	product, err := s.repo.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// Create валидирует и сохраняет новый товар (админская операция).
// Пустой ID заменяется сгенерированным.
func (s *Service) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}

	if err := s.repo.Create(product); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"category":   product.Category,
	}).Info("product created")
	return product, nil
}

// Update валидирует и перезаписывает существующий товар (админская операция).
func (s *Service) Update(_ context.Context, product domain.Product) (domain.Product, error) {
	current, err := s.repo.Get(product.ID)
	if err != nil {
		return domain.Product{}, err
	}

	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = time.Now().UTC()

	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}

	if err := s.repo.Update(product); err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	s.logger.WithField("product_id", product.ID).Info("product updated")
	return product, nil
}

// Delete удаляет товар из каталога (админская операция).
func (s *Service) Delete(_ context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("product_id", id).Info("product deleted")
	return nil
}
