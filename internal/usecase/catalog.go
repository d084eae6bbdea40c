package usecase

import (
	"context"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Catalog wraps product CRUD and listing. Authorization for writes is the
// transport layer's concern; this layer only validates the data.
type Catalog struct {
	products ProductRepo
}

func NewCatalog(products ProductRepo) *Catalog {
	return &Catalog{products: products}
}

// ProductPage is one page of a listing.
type ProductPage struct {
	Count   int64
	Results []domain.Product
}

// List applies substring search, exact price filter, whitelisted ordering
// and offset pagination. Page numbers are 1-based.
func (uc *Catalog) List(ctx context.Context, query, price, ordering string, page, pageSize int) (*ProductPage, error) {
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	if page < 1 {
		page = 1
	}
	f := ProductFilter{
		Query:    query,
		Price:    price,
		Ordering: ordering,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}
	results, count, err := uc.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Count: count, Results: results}, nil
}

func (uc *Catalog) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return uc.products.Get(ctx, id)
}

func (uc *Catalog) Create(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return uc.products.Create(ctx, p)
}

// Update is a full replace of the mutable product fields.
func (uc *Catalog) Update(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return uc.products.Update(ctx, p)
}

// Delete rejects removal of any product still referenced by an order line;
// order history must stay intact.
func (uc *Catalog) Delete(ctx context.Context, id int64) error {
	return uc.products.Delete(ctx, id)
}
