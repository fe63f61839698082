package service

import (
	"errors"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryCycle     = errors.New("category parent chain forms a cycle")
	ErrProductReferenced = errors.New("product is referenced by carts or orders")
)

type CatalogService interface {
	CreateCategory(category *model.Category) error
	UpdateCategory(category *model.Category) error
	DeleteCategory(id uint) error
	GetCategoryByID(id uint) (*model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	ListCategories() ([]model.Category, error)
	ListRootCategories() ([]model.Category, error)
	ListChildCategories(parentID uint) ([]model.Category, error)

	CreateProduct(product *model.Product, categoryIDs []uint) error
	UpdateProduct(product *model.Product) error
	ReplaceProductCategories(productID uint, categoryIDs []uint) error
	DeleteProduct(id uint) error
	GetProductByID(id uint) (*model.Product, error)
	GetProductBySKU(sku string) (*model.Product, error)
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)

	CategoryStats() ([]repository.CategoryPriceStats, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	reportRepo   repository.ReportRepository
}

func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, reportRepo repository.ReportRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		reportRepo:   reportRepo,
	}
}

func (s *catalogService) CreateCategory(category *model.Category) error {
	logger.Debug("Creating category", map[string]interface{}{
		"name":      category.Name,
		"parent_id": category.ParentID,
	})

	if category.Slug == "" {
		category.Slug = util.Slugify(category.Name)
	}
	if category.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(*category.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	return s.categoryRepo.Create(category)
}

func (s *catalogService) UpdateCategory(category *model.Category) error {
	if _, err := s.categoryRepo.FindByID(category.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if category.ParentID != nil {
		if err := s.checkParentChain(category.ID, *category.ParentID); err != nil {
			return err
		}
	}
	return s.categoryRepo.Update(category)
}

// checkParentChain walks up from the proposed parent and rejects the update
// if it would make the category its own ancestor.
func (s *catalogService) checkParentChain(categoryID, parentID uint) error {
	current := parentID
	for {
		if current == categoryID {
			logger.Warn("Category update rejected: cycle detected", map[string]interface{}{
				"category_id": categoryID,
				"parent_id":   parentID,
			})
			return ErrCategoryCycle
		}
		parent, err := s.categoryRepo.FindByID(current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) GetCategoryByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) ListRootCategories() ([]model.Category, error) {
	return s.categoryRepo.FindRoots()
}

func (s *catalogService) ListChildCategories(parentID uint) ([]model.Category, error) {
	if _, err := s.categoryRepo.FindByID(parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.categoryRepo.FindChildren(parentID)
}

func (s *catalogService) CreateProduct(product *model.Product, categoryIDs []uint) error {
	logger.Debug("Creating product", map[string]interface{}{
		"sku":        product.SKU,
		"name":       product.Name,
		"categories": len(categoryIDs),
	})

	if product.Slug == "" {
		product.Slug = util.Slugify(product.Name)
	}

	for _, categoryID := range categoryIDs {
		if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}

	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	if len(categoryIDs) > 0 {
		return s.productRepo.ReplaceCategories(product.ID, categoryIDs)
	}
	return nil
}

func (s *catalogService) UpdateProduct(product *model.Product) error {
	if _, err := s.productRepo.FindByID(product.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Update(product)
}

func (s *catalogService) ReplaceProductCategories(productID uint, categoryIDs []uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	for _, categoryID := range categoryIDs {
		if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	return s.productRepo.ReplaceCategories(productID, categoryIDs)
}

// DeleteProduct refuses to remove a product that live carts or past orders
// still reference.
func (s *catalogService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	cartRows, orderRows, err := s.productRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if cartRows > 0 || orderRows > 0 {
		logger.Warn("Product deletion blocked by references", map[string]interface{}{
			"product_id": id,
			"cart_rows":  cartRows,
			"order_rows": orderRows,
		})
		return ErrProductReferenced
	}

	return s.productRepo.Delete(id)
}

func (s *catalogService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProductBySKU(sku string) (*model.Product, error) {
	product, err := s.productRepo.FindBySKU(sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// CategoryStats reports product count and price statistics per category.
func (s *catalogService) CategoryStats() ([]repository.CategoryPriceStats, error) {
	return s.reportRepo.AveragePriceByCategory()
}

func (s *catalogService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	if filter.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*filter.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}
	return s.productRepo.FindWithFilter(filter)
}
