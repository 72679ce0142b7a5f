package catalog

import (
	"log/slog"

	"github.com/shopspring/decimal"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListProducts(filter ProductFilter) ([]*Product, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	products, err := s.repo.ListProducts(filter)
	if err != nil {
		s.logger.Error("failed to list products", "error", err)
		return nil, err
	}
	return products, nil
}

func (s *Service) GetProduct(productID string) (*Product, error) {
	p, err := s.repo.GetProduct(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *Service) CreateProduct(dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Product{
		ProductID:       dto.ProductID,
		Name:            dto.Name,
		CategoryID:      dto.CategoryID,
		Detail:          dto.Detail,
		InstockQuantity: dto.InstockQuantity,
		Price:           dto.Price,
		ExpireDate:      dto.ExpireDate,
		PhotoPath:       dto.PhotoPath,
	}
	if err := s.repo.CreateProduct(p); err != nil {
		s.logger.Error("failed to create product", "error", err, "product_id", dto.ProductID)
		return nil, err
	}

	s.logger.Info("product created", "product_id", p.ProductID)
	return p, nil
}

func (s *Service) UpdateProduct(productID string, dto UpdateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProduct(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.CategoryID != nil {
		p.CategoryID = *dto.CategoryID
	}
	if dto.Detail != nil {
		p.Detail = *dto.Detail
	}
	if dto.InstockQuantity != nil {
		p.InstockQuantity = *dto.InstockQuantity
	}
	if dto.Price != nil {
		p.Price = *dto.Price
	}
	if dto.ExpireDate != nil {
		p.ExpireDate = dto.ExpireDate
	}
	if dto.PhotoPath != nil {
		p.PhotoPath = *dto.PhotoPath
	}

	if err := s.repo.UpdateProduct(p); err != nil {
		s.logger.Error("failed to update product", "error", err, "product_id", productID)
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(productID string) error {
	if _, err := s.repo.GetProduct(productID); err != nil {
		return ErrProductNotFound
	}
	if err := s.repo.DeleteProduct(productID); err != nil {
		s.logger.Error("failed to delete product", "error", err, "product_id", productID)
		return err
	}
	s.logger.Info("product deleted", "product_id", productID)
	return nil
}

func (s *Service) ListPackages(productID string) ([]*Package, error) {
	if _, err := s.repo.GetProduct(productID); err != nil {
		return nil, ErrProductNotFound
	}
	packages, err := s.repo.ListPackages(productID)
	if err != nil {
		s.logger.Error("failed to list packages", "error", err, "product_id", productID)
		return nil, err
	}
	return packages, nil
}

func (s *Service) GetPackage(packageID string) (*Package, error) {
	pkg, err := s.repo.GetPackage(packageID)
	if err != nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

func (s *Service) CreatePackage(dto CreatePackageDTO) (*Package, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProduct(dto.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	pkg := &Package{
		PackageID:        dto.PackageID,
		ProductID:        dto.ProductID,
		Name:             dto.Name,
		Price:            dto.Price,
		BonusDescription: dto.BonusDescription,
	}
	if err := s.repo.CreatePackage(pkg); err != nil {
		s.logger.Error("failed to create package", "error", err, "package_id", dto.PackageID)
		return nil, err
	}

	s.logger.Info("package created", "package_id", pkg.PackageID, "product_id", pkg.ProductID)
	return pkg, nil
}

func (s *Service) UpdatePackage(packageID string, dto UpdatePackageDTO) (*Package, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.repo.GetPackage(packageID)
	if err != nil {
		return nil, ErrPackageNotFound
	}

	if dto.Name != nil {
		pkg.Name = *dto.Name
	}
	if dto.Price != nil {
		pkg.Price = *dto.Price
	}
	if dto.BonusDescription != nil {
		pkg.BonusDescription = *dto.BonusDescription
	}

	if err := s.repo.UpdatePackage(pkg); err != nil {
		s.logger.Error("failed to update package", "error", err, "package_id", packageID)
		return nil, err
	}
	return pkg, nil
}

func (s *Service) DeletePackage(packageID string) error {
	if _, err := s.repo.GetPackage(packageID); err != nil {
		return ErrPackageNotFound
	}
	if err := s.repo.DeletePackage(packageID); err != nil {
		s.logger.Error("failed to delete package", "error", err, "package_id", packageID)
		return err
	}
	s.logger.Info("package deleted", "package_id", packageID)
	return nil
}

// VerifiedPrice returns the stored price for the package when it belongs to
// the product. Callers must use this value, never a client-supplied one.
func (s *Service) VerifiedPrice(productID, packageID string) (decimal.Decimal, error) {
	price, err := s.repo.PackagePrice(productID, packageID)
	if err != nil {
		return decimal.Zero, ErrPackageNotFound
	}
	return price, nil
}
