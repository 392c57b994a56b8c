package usecase

import (
	"context"
	"strings"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/repository"
	"neohand/pkg/errors"
)

type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type CreateProductInput struct {
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice float64  `json:"original_price" validate:"omitempty,gt=0"`
	Images        []string `json:"images" validate:"omitempty,dive,url"`
	CategoryID    string   `json:"category_id"`
}

type UpdateProductInput struct {
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice float64  `json:"original_price" validate:"omitempty,gt=0"`
	Images        []string `json:"images" validate:"omitempty,dive,url"`
	CategoryID    string   `json:"category_id"`
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	if err := validateProductFields(input.Name, input.Price, input.OriginalPrice); err != nil {
		return nil, err
	}
	if input.CategoryID != "" {
		if _, err := uc.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &entity.Product{
		Name:          strings.TrimSpace(input.Name),
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Images:        input.Images,
		CategoryID:    input.CategoryID,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// ListProducts returns products filtered by category when categoryID is
// non-empty, newest first.
func (uc *ProductUseCase) ListProducts(ctx context.Context, categoryID string, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, categoryID, limit, offset)
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*entity.Product, error) {
	if err := validateProductFields(input.Name, input.Price, input.OriginalPrice); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != "" && input.CategoryID != product.CategoryID {
		if _, err := uc.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.Images = input.Images
	product.CategoryID = input.CategoryID

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.productRepo.Delete(ctx, id)
}

func validateProductFields(name string, price, originalPrice float64) error {
	if strings.TrimSpace(name) == "" {
		return errors.BadRequest("Product name is required", nil)
	}
	if price <= 0 {
		return errors.BadRequest("Product price must be positive", nil)
	}
	if price >= entity.MaxProductPrice {
		return errors.BadRequest("Product price exceeds the allowed maximum", nil)
	}
	if originalPrice != 0 && (originalPrice <= 0 || originalPrice >= entity.MaxProductPrice) {
		return errors.BadRequest("Original price out of allowed range", nil)
	}
	return nil
}
