package main

import (
	"log"

	"storefront-be/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	Name        string
	Slug        string
	Description string
	Price       string
	Stock       int
	Featured    bool
}

type seedCategory struct {
	Name        string
	Slug        string
	Description string
	Products    []seedProduct
}

var demoCatalog = []seedCategory{
	{
		Name:        "Electronics",
		Slug:        "electronics",
		Description: "Gadgets and accessories",
		Products: []seedProduct{
			{Name: "Wireless Headphones", Slug: "wireless-headphones", Description: "Over-ear, 30h battery", Price: "129.99", Stock: 25, Featured: true},
			{Name: "USB-C Charger", Slug: "usb-c-charger", Description: "65W fast charger", Price: "39.00", Stock: 8},
			{Name: "Mechanical Keyboard", Slug: "mechanical-keyboard", Description: "Hot-swappable switches", Price: "89.50", Stock: 0},
		},
	},
	{
		Name:        "Home",
		Slug:        "home",
		Description: "Things for the house",
		Products: []seedProduct{
			{Name: "Ceramic Mug", Slug: "ceramic-mug", Description: "350ml, dishwasher safe", Price: "12.00", Stock: 120, Featured: true},
			{Name: "Desk Lamp", Slug: "desk-lamp", Description: "Dimmable LED", Price: "45.25", Stock: 4},
		},
	},
	{
		Name:        "Books",
		Slug:        "books",
		Description: "Paperbacks and hardcovers",
		Products: []seedProduct{
			{Name: "The Go Programming Language", Slug: "the-go-programming-language", Description: "Donovan and Kernighan", Price: "34.99", Stock: 15},
		},
	},
}

// seedCatalog inserts the demo catalog, skipping rows whose slug already exists.
// Returns the number of products created.
func seedCatalog(db *gorm.DB) (int, error) {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, c := range demoCatalog {
			var category model.Category
			err := tx.Where("slug = ?", c.Slug).
				Attrs(model.Category{Name: c.Name, Description: c.Description}).
				FirstOrCreate(&category).Error
			if err != nil {
				return err
			}

			for _, p := range c.Products {
				var existing model.Product
				if err := tx.Where("slug = ?", p.Slug).Limit(1).Find(&existing).Error; err != nil {
					return err
				}
				if existing.Slug != "" {
					log.Printf("Product '%s' already exists, skipping...", p.Slug)
					continue
				}

				product := model.Product{
					CategoryId:  category.Id,
					Name:        p.Name,
					Slug:        p.Slug,
					Description: p.Description,
					Price:       decimal.RequireFromString(p.Price),
					Stock:       p.Stock,
					Featured:    p.Featured,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				created++
			}
		}
		return nil
	})
	return created, err
}
