package memory

import (
	"github.com/mvaldivia/calzado-store/internal/money"

	"github.com/mvaldivia/calzado-store/internal/catalog/domain"
)

// Seed loads the retailer's launch catalog. Prices are in soles (S/).
func Seed(s *Store) {
	for _, p := range []domain.Product{
		{
			SKU:      "MOC-001",
			Name:     "Mocasín Clásico",
			Price:    money.Require("150.00"),
			Stock:    12,
			Image:    "https://images.unsplash.com/photo-1491553895911-0055eca6402d?auto=format&fit=crop&w=800&q=80",
			Category: domain.CategoryHombres,
		},
		{
			SKU:      "BOT-002",
			Name:     "Botín Cuero Premium",
			Price:    money.Require("220.00"),
			Stock:    8,
			Image:    "https://images.unsplash.com/photo-1608256246200-53e635b5b69f?auto=format&fit=crop&w=800&q=80",
			Category: domain.CategoryHombres,
		},
		{
			SKU:      "FOR-003",
			Name:     "Zapato Formal Oxford",
			Price:    money.Require("180.00"),
			Stock:    15,
			Image:    "https://images.unsplash.com/photo-1607107121228-aa4a151e5ba4?auto=format&fit=crop&w=800&q=80",
			Category: domain.CategoryHombres,
		},
		{
			SKU:      "SAN-004",
			Name:     "Sandalia Artesanal",
			Price:    money.Require("90.00"),
			Stock:    5,
			Image:    "https://images.unsplash.com/photo-1603487742131-4160d6e243c6?auto=format&fit=crop&w=800&q=80",
			Category: domain.CategoryMujeres,
		},
		{
			SKU:      "SNE-005",
			Name:     "Sneaker Casual Cuero",
			Price:    money.Require("165.00"),
			Stock:    20,
			Image:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&w=800&q=80",
			Category: domain.CategoryUnisex,
		},
	} {
		s.Add(p)
	}
}
