package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
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

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"citations", "permits", "spaces", "zones", "parking_lots", "vehicles", "drivers"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		lots := []struct {
			Name    string
			Address string
		}{
			{"North", "1 Campus Drive"},
			{"South", "200 College Avenue"},
			{"Visitor", "5 Welcome Way"},
		}

		for _, l := range lots {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM parking_lots WHERE name = $1", l.Name).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec("INSERT INTO parking_lots (name, address, created_at, updated_at) VALUES ($1, $2, now(), now())", l.Name, l.Address); err != nil {
				log.Fatalf("failed to insert lot %s: %v", l.Name, err)
			}
			fmt.Printf("Seeded lot: %s\n", l.Name)
		}

		zones := []struct {
			ZoneID string
			Lot    string
		}{
			{"A", "North"}, {"B", "North"}, {"C", "South"}, {"D", "South"},
			{"AS", "North"}, {"BS", "North"}, {"CS", "South"}, {"DS", "South"},
			{"V", "Visitor"},
		}

		for _, z := range zones {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM zones WHERE zone_id = $1 AND lot_name = $2", z.ZoneID, z.Lot).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec("INSERT INTO zones (zone_id, lot_name, created_at, updated_at) VALUES ($1, $2, now(), now())", z.ZoneID, z.Lot); err != nil {
				log.Fatalf("failed to insert zone %s/%s: %v", z.ZoneID, z.Lot, err)
			}
			fmt.Printf("Seeded zone: %s in lot %s\n", z.ZoneID, z.Lot)
		}

		spaceTypes := []string{"regular", "regular", "compact car", "electric", "handicap"}
		for _, z := range zones {
			for number, spaceType := range spaceTypes {
				var exists int
				if err := db.QueryRow("SELECT 1 FROM spaces WHERE number = $1 AND zone_id = $2 AND lot_name = $3", number+1, z.ZoneID, z.Lot).Scan(&exists); err == nil {
					continue
				}
				if _, err := db.Exec("INSERT INTO spaces (number, zone_id, lot_name, space_type, available, created_at, updated_at) VALUES ($1, $2, $3, $4, true, now(), now())", number+1, z.ZoneID, z.Lot, spaceType); err != nil {
					log.Fatalf("failed to insert space %d in zone %s: %v", number+1, z.ZoneID, err)
				}
			}
		}
		fmt.Println("Seeded spaces for all zones")

		drivers := []struct {
			ID    string
			Name  string
			Class string
		}{
			{"E1001", "Maria Alvarez", "employee"},
			{"S2001", "Jordan Lee", "student"},
			{"V3001", "Sam Porter", "visitor"},
		}

		for _, d := range drivers {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM drivers WHERE id = $1", d.ID).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec("INSERT INTO drivers (id, name, class, created_at, updated_at) VALUES ($1, $2, $3, now(), now())", d.ID, d.Name, d.Class); err != nil {
				log.Fatalf("failed to insert driver %s: %v", d.ID, err)
			}
			fmt.Printf("Seeded driver: %s (%s)\n", d.ID, d.Class)
		}

		vehicles := []struct {
			License      string
			Model        string
			Color        string
			Manufacturer string
			Year         int
		}{
			{"ABC-123", "Civic", "blue", "Honda", 2021},
			{"XYZ-789", "Model 3", "white", "Tesla", 2023},
			{"JKL-456", "Corolla", "silver", "Toyota", 2019},
		}

		for _, v := range vehicles {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM vehicles WHERE license = $1", v.License).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec("INSERT INTO vehicles (license, model, color, manufacturer, year, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, now(), now())", v.License, v.Model, v.Color, v.Manufacturer, v.Year); err != nil {
				log.Fatalf("failed to insert vehicle %s: %v", v.License, err)
			}
			fmt.Printf("Seeded vehicle: %s\n", v.License)
		}

		fmt.Println("Sample data seeded successfully")
	},
}
