package dao

import (
	"Freshgo/models"
	"context"

	"gorm.io/gorm"
)

type Product struct {
	Repo[models.Product]
}

func NewProduct(db *gorm.DB) *Product {
	return &Product{
		Repo: NewRepo[models.Product](db),
	}
}

// GetByIds 只取上架商品
func (p *Product) GetByIds(ctx context.Context, ids []uint64) ([]*models.Product, error) {
	var products []*models.Product
	err := p.Db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, 1).
		Find(&products).Error
	return products, err
}

func (p *Product) GetInventory(ctx context.Context, productID uint64) (uint32, error) {
	var product models.Product
	err := p.Db.WithContext(ctx).Select("stock").Where("id = ?", productID).First(&product).Error
	if err != nil {
		return 0, err
	}
	return product.Stock, nil
}
