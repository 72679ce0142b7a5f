package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			tables := []string{"payments", "order_items", "orders", "product_packages", "products", "product_categories", "discounts", "users"}
			for _, table := range tables {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			if err := db.Exec("UPDATE id_counters SET value = 0").Error; err != nil {
				log.Fatalf("failed to reset id counters: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		password := "TopUpDemo#2024!"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		adminEmail := "admin@mail.com"
		var exists int
		adminExists := false
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row().Scan(&exists); err == nil {
			fmt.Println("admin user already exists; skipping")
			adminExists = true
		}

		if !adminExists {
			err := db.Exec(`INSERT INTO users (user_id, username, first_name, email, phone_number, password_hash, role, created_at, updated_at)
				VALUES ('ADM001', 'admin', 'Admin', ?, '+66000000000', ?, 'admin', now(), now())`,
				adminEmail, string(hash)).Error
			if err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		demoEmail := "demo@mail.com"
		demoExists := false
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", demoEmail).Row().Scan(&exists); err == nil {
			fmt.Println("demo user already exists; skipping")
			demoExists = true
		}

		if !demoExists {
			err := db.Exec(`INSERT INTO users (user_id, username, first_name, email, phone_number, password_hash, role, created_at, updated_at)
				VALUES ('CUS001', 'demo', 'Demo', ?, '+66811111111', ?, 'customer', now(), now())`,
				demoEmail, string(hash)).Error
			if err != nil {
				log.Fatalf("failed to insert demo user: %v", err)
			}
			if err := db.Exec("UPDATE id_counters SET value = 1 WHERE name = 'customer' AND value < 1").Error; err != nil {
				log.Fatalf("failed to bump customer counter: %v", err)
			}
			fmt.Println("Seeded demo user:", demoEmail)
		}

		categories := []struct {
			Name string
			Desc string
		}{
			{"MOBA", "Multiplayer online battle arena games"},
			{"RPG", "Role-playing games"},
			{"FPS", "First-person shooters"},
		}
		for _, c := range categories {
			var cid int64
			if err := db.Raw("SELECT id FROM product_categories WHERE name = ?", c.Name).Row().Scan(&cid); err != nil {
				err := db.Exec(`INSERT INTO product_categories (name, description, is_active, created_at, updated_at)
					VALUES (?, ?, true, now(), now())`, c.Name, c.Desc).Error
				if err != nil {
					log.Fatalf("failed to insert category %s: %v", c.Name, err)
				}
			}
		}

		var mobaID int64
		if err := db.Raw("SELECT id FROM product_categories WHERE name = 'MOBA'").Row().Scan(&mobaID); err != nil {
			log.Fatalf("failed to look up MOBA category: %v", err)
		}

		if err := db.Raw("SELECT 1 FROM products WHERE product_id = 'GAME001'").Row().Scan(&exists); err != nil {
			err := db.Exec(`INSERT INTO products (product_id, name, category_id, detail, instock_quantity, sold_quantity, price, rating, created_at, updated_at)
				VALUES ('GAME001', 'Arena of Heroes', ?, 'Top up diamonds for Arena of Heroes', 1000, 0, 0, 4.5, now(), now())`,
				mobaID).Error
			if err != nil {
				log.Fatalf("failed to insert product: %v", err)
			}

			packages := []struct {
				ID    string
				Name  string
				Price string
				Bonus string
			}{
				{"PKG001", "100 Diamonds", "59.00", ""},
				{"PKG002", "500 Diamonds", "279.00", "+25 bonus diamonds"},
				{"PKG003", "1000 Diamonds", "549.00", "+80 bonus diamonds"},
			}
			for _, p := range packages {
				err := db.Exec(`INSERT INTO product_packages (package_id, product_id, name, price, bonus_description, created_at, updated_at)
					VALUES (?, 'GAME001', ?, ?, ?, now(), now())`,
					p.ID, p.Name, p.Price, p.Bonus).Error
				if err != nil {
					log.Fatalf("failed to insert package %s: %v", p.ID, err)
				}
			}
			fmt.Println("Seeded demo product GAME001 with packages")
		}

		fmt.Println("Seeding complete")
	},
}
