package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	Id              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName    string          `gorm:"type:varchar(255);not null"`
	CustomerEmail   string          `gorm:"type:varchar(255);not null"`
	CustomerAddress string          `gorm:"type:text;not null"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status          string          `gorm:"type:varchar(50);not null;default:'pending'"`
	Items           []OrderItem     `gorm:"foreignKey:OrderId"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductId uuid.UUID       `gorm:"type:uuid;not null;index"`
	Product   *Product        `gorm:"foreignKey:ProductId;constraint:OnDelete:RESTRICT"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
