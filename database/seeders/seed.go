package seeders

import (
	"gorm.io/gorm"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/pkg/auth"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
	Register("policies", SeedPolicies)
}

// SeedAdminUser creates the default console account. Change the password
// after first login.
func SeedAdminUser(db *gorm.DB) error {
	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "Hydroline Admin",
		Email:    "admin@hydroline.in",
		Password: hash,
		Role:     "admin",
	}
	return db.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error
}

// SeedCategories inserts the four standard product groups.
func SeedCategories(db *gorm.DB) error {
	names := []models.Category{
		{Name: "Hydraulic Pumps", Description: "Gear, vane and piston pumps for industrial circuits"},
		{Name: "Control Valves", Description: "Directional, pressure and flow control valves"},
		{Name: "Cylinders", Description: "Tie-rod and welded hydraulic cylinders"},
		{Name: "Hoses & Fittings", Description: "High pressure hoses, adapters and quick couplers"},
	}
	for i := range names {
		if err := db.Where(models.Category{Name: names[i].Name}).FirstOrCreate(&names[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a small demo catalog. Prices are in paise.
func SeedProducts(db *gorm.DB) error {
	var pumps, valves models.Category
	if err := db.Where("name = ?", "Hydraulic Pumps").First(&pumps).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "Control Valves").First(&valves).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name:           "HGP-2A Gear Pump 8cc",
			Path:           "hgp-2a-gear-pump-8cc",
			Description:    "Aluminium body external gear pump, 8 cc/rev, 250 bar rated.",
			CategoryID:     pumps.ID,
			Price:          485000,
			DiscountPrice:  429000,
			DeliveryCharge: 15000,
			Stock:          24,
			Specs:          `{"displacement":"8 cc/rev","maxPressure":"250 bar","mount":"SAE A 2-bolt"}`,
		},
		{
			Name:           "DSG-03 Solenoid Valve 4/3",
			Path:           "dsg-03-solenoid-valve",
			Description:    "4/3 closed-centre solenoid operated directional valve, 220V AC coil.",
			CategoryID:     valves.ID,
			Price:          712500,
			DeliveryCharge: 10000,
			Stock:          12,
			Specs:          `{"size":"NG10","spool":"closed centre","coil":"220V AC"}`,
		},
	}
	for i := range products {
		err := db.Where(models.Product{Name: products[i].Name, Path: products[i].Path}).
			FirstOrCreate(&products[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedPolicies creates placeholder legal pages so the storefront links
// resolve before the content team edits them.
func SeedPolicies(db *gorm.DB) error {
	policies := []models.Policy{
		{Category: "privacy", Title: "Privacy Policy", Body: "Placeholder privacy policy."},
		{Category: "returns", Title: "Return & Refund Policy", Body: "Placeholder returns policy."},
		{Category: "shipping", Title: "Shipping Policy", Body: "Placeholder shipping policy."},
		{Category: "terms", Title: "Terms of Service", Body: "Placeholder terms of service."},
	}
	for i := range policies {
		err := db.Where(models.Policy{Category: policies[i].Category}).
			FirstOrCreate(&policies[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}
