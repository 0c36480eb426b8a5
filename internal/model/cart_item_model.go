package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one cart line. The (user_id, product_id) unique index is what keeps
// concurrent add-to-cart calls from producing duplicate lines.
type CartItem struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Product   *Product  `gorm:"foreignKey:ProductId;constraint:OnDelete:CASCADE"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
