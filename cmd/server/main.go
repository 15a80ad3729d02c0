// AgencyApp - Marketing Service Ordering WebApp
// Optimized for shared hosting with limited resources
package main

import (
	"context"
	"log"
	"os"
	"runtime"

	"agencyapp/internal/config"
	"agencyapp/internal/domain"
	"agencyapp/internal/repository"
	"agencyapp/internal/repository/sqlite"
	"agencyapp/internal/server"
	"agencyapp/internal/wizard"
)

func main() {
	// Limit CPU usage for shared hosting
	runtime.GOMAXPROCS(1)

	// Load configuration
	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	log.Printf("📣 Starting %s...", cfg.Business.Name)
	log.Printf("📋 Debug mode: %v", cfg.Debug)

	// Initialize database
	db, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Println("✅ Database initialized")

	// Create admin user if none exists
	if err := createDefaultAdmin(db); err != nil {
		log.Printf("⚠️ Could not create default admin: %v", err)
	}

	// Initialize repositories
	repos := &repository.Repositories{
		Users:    sqlite.NewUserRepo(db),
		Services: sqlite.NewServiceRepo(db),
		Orders:   sqlite.NewOrderRepo(db),
		Settings: sqlite.NewSettingsRepo(db),
	}

	// In-memory wizard sessions
	sessions := wizard.NewStore(wizard.DefaultIdleTTL)

	// Create and run the server
	srv := server.New(cfg, repos, sessions)

	log.Printf("🌐 Server listening on http://%s", cfg.Address())

	if err := srv.Run(); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}

// createDefaultAdmin creates a default admin user if no users exist
func createDefaultAdmin(db *sqlite.DB) error {
	// Check if any users exist
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil // Users already exist
	}

	// Create default admin
	// Password: admin123 (CHANGE IN PRODUCTION!)
	hashedPassword, err := sqlite.HashPassword("admin123")
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, name, phone, role)
		VALUES (?, ?, ?, ?, ?)
	`, "admin@agencyapp.local", hashedPassword, "Administrator", "", "admin")

	if err != nil {
		return err
	}

	log.Println("✅ Default admin user created:")
	log.Println("   Email: admin@agencyapp.local")
	log.Println("   Password: admin123")
	log.Println("   ⚠️ CHANGE THIS PASSWORD IN PRODUCTION!")

	// Create sample data for testing
	if os.Getenv("SEED_DATA") == "true" {
		createSampleData(db)
	}

	return nil
}

// createSampleData populates the catalog with a couple of configurable services
func createSampleData(db *sqlite.DB) {
	log.Println("🌱 Creating sample catalog...")

	services := sqlite.NewServiceRepo(db)
	ctx := context.Background()

	samples := []domain.Service{
		{
			Name:             "Landing Page",
			ShortDescription: "Conversion-focused single page",
			Description:      "Design and build of a single-page site tailored to one campaign goal.",
			BasePrice:        50000,
			DeliveryDays:     7,
			Category:         "web",
			Status:           domain.ServiceStatusActive,
			Features:         []string{"Responsive layout", "Contact form", "Basic SEO"},
			Steps: []domain.Step{
				{
					ID:    "scope",
					Title: "Scope",
					Options: []domain.Option{
						{
							ID:    "sections",
							Label: "Page sections",
							Type:  domain.OptionTypeSelect,
							Choices: []domain.Choice{
								{Value: "basic", Label: "Up to 4 sections", PriceAdjust: 0, DeliveryAdjust: 0},
								{Value: "extended", Label: "Up to 8 sections", PriceAdjust: 20000, DeliveryAdjust: 3},
							},
						},
						{
							ID:             "copywriting",
							Label:          "Professional copywriting",
							Type:           domain.OptionTypeCheckbox,
							PriceAdjust:    15000,
							DeliveryAdjust: 2,
						},
					},
				},
			},
		},
		{
			Name:             "Social Media Kit",
			ShortDescription: "Branded templates for your channels",
			Description:      "A reusable set of post and story templates matching your brand.",
			BasePrice:        30000,
			DeliveryDays:     5,
			Category:         "branding",
			Status:           domain.ServiceStatusActive,
			Features:         []string{"Post templates", "Story templates", "Usage guide"},
			Steps: []domain.Step{
				{
					ID:    "volume",
					Title: "Volume",
					Options: []domain.Option{
						{
							ID:    "template_count",
							Label: "Number of templates",
							Type:  domain.OptionTypeSelect,
							Choices: []domain.Choice{
								{Value: "10", Label: "10 templates", PriceAdjust: 0, DeliveryAdjust: 0},
								{Value: "20", Label: "20 templates", PriceAdjust: 18000, DeliveryAdjust: 3},
							},
						},
					},
				},
			},
		},
	}

	for i := range samples {
		if err := services.Create(ctx, &samples[i]); err != nil {
			log.Printf("⚠️ Could not seed service %q: %v", samples[i].Name, err)
		}
	}

	log.Println("✅ Sample catalog created")
}
