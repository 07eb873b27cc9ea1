package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/company-portal/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample company data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"works_on", "dependent", "project", "employee", "department", "app_user"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := auth.HashPassword("password", cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		users := []struct {
			Username string
			Role     string
		}{
			{"admin", "admin"},
			{"jsmith", "user"},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM app_user WHERE username = ?", u.Username).Row().Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Username)
				continue
			}
			if err := db.Exec("INSERT INTO app_user (username, password_hash, role) VALUES (?, ?, ?)",
				u.Username, hash, u.Role).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Printf("Seeded app user: %s (%s)\n", u.Username, u.Role)
		}

		departments := []struct {
			Dnumber int
			Dname   string
			MgrSSN  *string
		}{
			{1, "Headquarters", nil},
			{4, "Administration", strPtr("987654321")},
			{5, "Research", strPtr("333445555")},
		}

		for _, d := range departments {
			var exists int
			if err := db.Raw("SELECT 1 FROM department WHERE dnumber = ?", d.Dnumber).Row().Scan(&exists); err == nil {
				continue
			}
			// manager may not exist yet; set after employees are in
			if err := db.Exec("INSERT INTO department (dnumber, dname, mgr_ssn) VALUES (?, ?, NULL)",
				d.Dnumber, d.Dname).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Dname, err)
			}
		}

		employees := []struct {
			SSN     string
			Fname   string
			Lname   string
			Address string
			Salary  float64
			Dno     int
		}{
			{"123456789", "John", "Smith", "731 Fondren, Houston, TX", 30000, 5},
			{"333445555", "Franklin", "Wong", "638 Voss, Houston, TX", 40000, 5},
			{"987654321", "Jennifer", "Wallace", "291 Berry, Bellaire, TX", 43000, 4},
			{"453453453", "Joyce", "English", "5631 Rice, Houston, TX", 25000, 5},
		}

		for _, e := range employees {
			var exists int
			if err := db.Raw("SELECT 1 FROM employee WHERE ssn = ?", e.SSN).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO employee (ssn, fname, lname, address, salary, dno) VALUES (?, ?, ?, ?, ?, ?)",
				e.SSN, e.Fname, e.Lname, e.Address, e.Salary, e.Dno).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.SSN, err)
			}
		}

		for _, d := range departments {
			if d.MgrSSN == nil {
				continue
			}
			if err := db.Exec("UPDATE department SET mgr_ssn = ? WHERE dnumber = ?", *d.MgrSSN, d.Dnumber).Error; err != nil {
				log.Fatalf("failed to set manager for department %d: %v", d.Dnumber, err)
			}
		}

		projects := []struct {
			Pnumber int
			Pname   string
			Dnum    int
		}{
			{1, "ProductX", 5},
			{2, "ProductY", 5},
			{10, "Computerization", 4},
		}

		for _, p := range projects {
			var exists int
			if err := db.Raw("SELECT 1 FROM project WHERE pnumber = ?", p.Pnumber).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO project (pnumber, pname, dnum) VALUES (?, ?, ?)",
				p.Pnumber, p.Pname, p.Dnum).Error; err != nil {
				log.Fatalf("failed to insert project %s: %v", p.Pname, err)
			}
		}

		assignments := []struct {
			ESSN  string
			Pno   int
			Hours float64
		}{
			{"123456789", 1, 32.5},
			{"123456789", 2, 7.5},
			{"333445555", 2, 10},
			{"453453453", 1, 20},
		}

		for _, a := range assignments {
			if err := db.Exec(`
				INSERT INTO works_on (essn, pno, hours) VALUES (?, ?, ?)
				ON CONFLICT (essn, pno) DO UPDATE SET hours = EXCLUDED.hours`,
				a.ESSN, a.Pno, a.Hours).Error; err != nil {
				log.Fatalf("failed to upsert assignment %s/%d: %v", a.ESSN, a.Pno, err)
			}
		}

		dependents := []struct {
			ESSN         string
			Name         string
			Sex          string
			BDate        string
			Relationship string
		}{
			{"333445555", "Alice", "F", "1986-04-05", "Daughter"},
			{"333445555", "Theodore", "M", "1983-10-25", "Son"},
			{"123456789", "Michael", "M", "1988-01-04", "Son"},
		}

		for _, d := range dependents {
			if err := db.Exec(`
				INSERT INTO dependent (essn, dependent_name, sex, bdate, relationship) VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (essn, dependent_name) DO UPDATE SET
					sex = EXCLUDED.sex, bdate = EXCLUDED.bdate, relationship = EXCLUDED.relationship`,
				d.ESSN, d.Name, d.Sex, d.BDate, d.Relationship).Error; err != nil {
				log.Fatalf("failed to upsert dependent %s/%s: %v", d.ESSN, d.Name, err)
			}
		}

		fmt.Println("Company sample data seeded successfully")
	},
}

func strPtr(s string) *string { return &s }
