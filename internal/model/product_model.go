package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryId  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    *Category       `gorm:"foreignKey:CategoryId;constraint:OnDelete:RESTRICT"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Slug        string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string          `gorm:"type:text;not null;default:''"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;check:price >= 0"`
	ImageUrl    string          `gorm:"type:text;not null;default:''"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"`
	Featured    bool            `gorm:"not null;default:false;index"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index"`
}

func (Product) TableName() string {
	return "products"
}
