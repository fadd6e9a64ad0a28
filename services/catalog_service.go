package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

type CustomerInput struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CustomerPatch carries the fields to change; nil fields are left alone.
type CustomerPatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (p CustomerPatch) empty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil && p.Address == nil
}

type ProductInput struct {
	Category    models.ProductCategory `json:"category"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	Price       decimal.Decimal        `json:"price"`
	Meta        *string                `json:"meta,omitempty"`
}

// CatalogService owns customers and products.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("nome").Find(&customers).Error; err != nil {
		return nil, storageError("customer", "", err)
	}
	return customers, nil
}

// RegisterCustomer stores a new customer. When another customer already uses
// the same phone or email, that record is returned and created is false.
func (s *CatalogService) RegisterCustomer(ctx context.Context, in CustomerInput) (customer *models.Customer, created bool, err error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return nil, false, invalidInput("customer name and phone are required")
	}
	email := trimmedOrNil(in.Email)

	db := s.db.WithContext(ctx)
	var existing models.Customer
	q := db.Where("telefone = ?", phone)
	if email != nil {
		q = q.Or("email = ?", *email)
	}
	err = q.First(&existing).Error
	switch {
	case err == nil:
		utils.InfoLogger.WithFields(logrus.Fields{
			"customer_id": existing.ID,
		}).Info("Customer already registered, returning existing record")
		return &existing, false, nil
	case !isRecordNotFound(err):
		return nil, false, storageError("customer", "", err)
	}

	c := models.Customer{
		ID:      newID(customerIDPrefix),
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: trimmedOrNil(in.Address),
	}
	if err := db.Create(&c).Error; err != nil {
		return nil, false, storageError("customer", c.ID, err)
	}
	utils.InfoLogger.WithField("customer_id", c.ID).Info("Customer registered")
	return &c, true, nil
}

func (s *CatalogService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, storageError("customer", id, err)
	}
	return &c, nil
}

// FindCustomer matches the exact id first, then any customer whose name
// contains idOrName, ignoring case. The first match by name wins.
func (s *CatalogService) FindCustomer(ctx context.Context, idOrName string) (*models.Customer, error) {
	term := strings.TrimSpace(idOrName)
	if term == "" {
		return nil, invalidInput("empty customer lookup")
	}

	db := s.db.WithContext(ctx)
	var c models.Customer
	err := db.Where("id = ?", term).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(term)+"%").
			Order("nome").
			First(&c).Error
	}
	if err != nil {
		return nil, storageError("customer", term, err)
	}
	return &c, nil
}

func (s *CatalogService) UpdateCustomer(ctx context.Context, id string, patch CustomerPatch) (*models.Customer, error) {
	if patch.empty() {
		return nil, invalidInput("no fields to update")
	}

	updates := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidInput("customer name cannot be blank")
		}
		updates["nome"] = name
	}
	if patch.Phone != nil {
		phone := strings.TrimSpace(*patch.Phone)
		if phone == "" {
			return nil, invalidInput("customer phone cannot be blank")
		}
		updates["telefone"] = phone
	}
	if patch.Email != nil {
		updates["email"] = trimmedOrNil(patch.Email)
	}
	if patch.Address != nil {
		updates["endereco"] = trimmedOrNil(patch.Address)
	}

	var c models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		if err := tx.Model(&c).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&c).Error
	})
	if err != nil {
		return nil, storageError("customer", id, err)
	}
	utils.InfoLogger.WithField("customer_id", id).Info("Customer updated")
	return &c, nil
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if res.Error != nil {
		return storageError("customer", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("customer", id)
	}
	utils.InfoLogger.WithField("customer_id", id).Info("Customer deleted")
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("nome").Find(&products).Error; err != nil {
		return nil, storageError("product", "", err)
	}
	return products, nil
}

func (s *CatalogService) RegisterProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	p := models.Product{ID: newID(productIDPrefix)}
	if err := applyProductInput(&p, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, storageError("product", p.ID, err)
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"product_id": p.ID,
		"category":   p.Category,
	}).Info("Product registered")
	return &p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, storageError("product", id, err)
	}
	return &p, nil
}

// UpdateProduct replaces every editable field of the product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if err := applyProductInput(&p, in); err != nil {
			return err
		}
		return tx.Save(&p).Error
	})
	if err != nil {
		if isInvalidInput(err) {
			return nil, err
		}
		return nil, storageError("product", id, err)
	}
	utils.InfoLogger.WithField("product_id", id).Info("Product updated")
	return &p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return storageError("product", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("product", id)
	}
	utils.InfoLogger.WithField("product_id", id).Info("Product deleted")
	return nil
}

// SearchProductsByName returns products whose name contains q, ignoring case.
func (s *CatalogService) SearchProductsByName(ctx context.Context, q string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(q))+"%").
		Order("nome").
		Find(&products).Error
	if err != nil {
		return nil, storageError("product", "", err)
	}
	return products, nil
}

func applyProductInput(p *models.Product, in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalidInput("product name is required")
	}
	if !in.Category.Valid() {
		return invalidInput("unknown product category %q", in.Category)
	}
	if in.Price.IsNegative() {
		return invalidInput("product price cannot be negative")
	}
	p.Name = name
	p.Category = in.Category
	p.Description = trimmedOrNil(in.Description)
	p.Price = in.Price.Round(2)
	p.Meta = trimmedOrNil(in.Meta)
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
