package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 对应数据库中的 products 表，四档价格按会员等级取列
type Product struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductName string         `gorm:"uniqueIndex:idx_product_name;not null;column:product_name" json:"product_name"`
	Attribute   OrderAttribute `gorm:"column:attribute;type:varchar(16);not null;default:'GENERAL'" json:"attribute"`
	Price       int64          `gorm:"not null;column:price" json:"price"`               // 原价（单位：分）
	MemberPrice int64          `gorm:"not null;column:member_price" json:"member_price"` // 会员价
	VipPrice    int64          `gorm:"not null;column:vip_price" json:"vip_price"`       // VIP 价
	SvipPrice   int64          `gorm:"not null;column:svip_price" json:"svip_price"`     // SVIP 价
	Stock       uint32         `gorm:"default:0;not null;column:stock" json:"stock"`
	CoverImage  string         `gorm:"size:512;default:'';column:cover_image" json:"cover_image"`
	Status      int8           `gorm:"default:1;not null;index:idx_status;column:status" json:"status"` // 0-下架, 1-上架
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index:idx_products_deleted_at;column:deleted_at" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
