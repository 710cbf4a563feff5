package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wearly/backend/internal/domain"
	"github.com/wearly/backend/internal/repository"
)

type ProductService struct {
	products repository.ProductRepository
	log      *zap.Logger
}

func NewProductService(products repository.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{products: products, log: log}
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product, createdBy string) (*domain.Product, error) {
	if product.Name == "" {
		return nil, invalidInput("product name is required")
	}
	if product.Price <= 0 {
		return nil, invalidInput("product price must be positive")
	}

	product.ID = uuid.NewString()
	product.CreatedBy = createdBy
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("created_by", createdBy))
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, notFound("product not found")
		}
		return nil, err
	}
	return product, nil
}
