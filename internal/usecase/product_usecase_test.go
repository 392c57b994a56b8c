package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neohand/internal/domain/entity"
	"neohand/pkg/errors"
)

type fakeProductRepository struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	nextID   int
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	product.ID = fmt.Sprintf("prod-%d", r.nextID)
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepository) List(ctx context.Context, categoryID string, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if categoryID == "" || p.CategoryID == categoryID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepository) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return errors.NotFound("Product", nil)
	}
	delete(r.products, id)
	return nil
}

type fakeCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]*entity.Category
	nextID     int
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{categories: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	category.ID = fmt.Sprintf("cat-%d", r.nextID)
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return errors.NotFound("Category", nil)
	}
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return errors.NotFound("Category", nil)
	}
	delete(r.categories, id)
	return nil
}

func TestCreateProduct(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepository(), newFakeCategoryRepository())

	product, err := uc.CreateProduct(context.Background(), CreateProductInput{
		Name:  "  Walnut Desk  ",
		Price: 4500,
	})
	require.NoError(t, err)
	assert.Equal(t, "Walnut Desk", product.Name)
	assert.NotEmpty(t, product.ID)
}

func TestCreateProductPriceBounds(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepository(), newFakeCategoryRepository())
	ctx := context.Background()

	cases := []struct {
		name  string
		price float64
	}{
		{"zero", 0},
		{"negative", -10},
		{"at max", entity.MaxProductPrice},
		{"above max", entity.MaxProductPrice + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateProduct(ctx, CreateProductInput{Name: "Desk", Price: tc.price})
			assert.Error(t, err)
		})
	}

	_, err := uc.CreateProduct(ctx, CreateProductInput{Name: "Desk", Price: entity.MaxProductPrice - 1})
	assert.NoError(t, err)
}

func TestCreateProductRequiresName(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepository(), newFakeCategoryRepository())

	_, err := uc.CreateProduct(context.Background(), CreateProductInput{Name: "   ", Price: 100})
	assert.Error(t, err)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepository(), newFakeCategoryRepository())

	_, err := uc.CreateProduct(context.Background(), CreateProductInput{
		Name: "Desk", Price: 100, CategoryID: "cat-missing",
	})
	assert.Error(t, err)
}

func TestUpdateProduct(t *testing.T) {
	productRepo := newFakeProductRepository()
	categoryRepo := newFakeCategoryRepository()
	uc := NewProductUseCase(productRepo, categoryRepo)
	ctx := context.Background()

	category, err := NewCategoryUseCase(categoryRepo).CreateCategory(ctx, "Office")
	require.NoError(t, err)

	product, err := uc.CreateProduct(ctx, CreateProductInput{Name: "Desk", Price: 100})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(ctx, product.ID, UpdateProductInput{
		Name: "Desk XL", Price: 150, CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Desk XL", updated.Name)
	assert.Equal(t, float64(150), updated.Price)
	assert.Equal(t, category.ID, updated.CategoryID)
}

func TestDeleteProduct(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepository(), newFakeCategoryRepository())
	ctx := context.Background()

	product, err := uc.CreateProduct(ctx, CreateProductInput{Name: "Desk", Price: 100})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, product.ID))
	assert.Error(t, uc.DeleteProduct(ctx, product.ID))
}

func TestCategoryLifecycle(t *testing.T) {
	uc := NewCategoryUseCase(newFakeCategoryRepository())
	ctx := context.Background()

	_, err := uc.CreateCategory(ctx, "  ")
	assert.Error(t, err)

	category, err := uc.CreateCategory(ctx, "Lighting")
	require.NoError(t, err)

	renamed, err := uc.UpdateCategory(ctx, category.ID, "Lamps")
	require.NoError(t, err)
	assert.Equal(t, "Lamps", renamed.Name)

	require.NoError(t, uc.DeleteCategory(ctx, category.ID))
	_, err = uc.GetCategory(ctx, category.ID)
	assert.Error(t, err)
}
