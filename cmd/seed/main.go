// seed inserts the standard vaccine schedule and a few sample drives into
// the local dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vaxcare/vaxcare-backend/internal/infrastructure/postgres"
)

type vaccineSpec struct {
	name      string
	age       string
	ageWeeks  int
	desc      string
	mandatory bool
}

// The national immunization schedule, in administration order.
var vaccines = []vaccineSpec{
	{"BCG", "At birth", 0, "Protection against tuberculosis", true},
	{"Hepatitis B (1st dose)", "At birth", 0, "First dose of Hepatitis B vaccine", true},
	{"OPV (0 dose)", "At birth", 0, "Oral Polio Vaccine", true},
	{"Hepatitis B (2nd dose)", "6 weeks", 6, "Second dose of Hepatitis B vaccine", true},
	{"DTaP (1st dose)", "6 weeks", 6, "Diphtheria, Tetanus, Pertussis", true},
	{"IPV (1st dose)", "6 weeks", 6, "Inactivated Polio Vaccine", true},
	{"Hib (1st dose)", "6 weeks", 6, "Haemophilus influenzae type b", true},
	{"Rotavirus (1st dose)", "6 weeks", 6, "Protection against rotavirus", true},
	{"PCV (1st dose)", "6 weeks", 6, "Pneumococcal Conjugate Vaccine", true},
	{"DTaP (2nd dose)", "10 weeks", 10, "Diphtheria, Tetanus, Pertussis", true},
	{"IPV (2nd dose)", "10 weeks", 10, "Inactivated Polio Vaccine", true},
	{"Hib (2nd dose)", "10 weeks", 10, "Haemophilus influenzae type b", true},
	{"Rotavirus (2nd dose)", "10 weeks", 10, "Protection against rotavirus", true},
	{"PCV (2nd dose)", "10 weeks", 10, "Pneumococcal Conjugate Vaccine", true},
	{"DTaP (3rd dose)", "14 weeks", 14, "Diphtheria, Tetanus, Pertussis", true},
	{"IPV (3rd dose)", "14 weeks", 14, "Inactivated Polio Vaccine", true},
	{"Hib (3rd dose)", "14 weeks", 14, "Haemophilus influenzae type b", true},
	{"Rotavirus (3rd dose)", "14 weeks", 14, "Protection against rotavirus", true},
	{"PCV (3rd dose)", "14 weeks", 14, "Pneumococcal Conjugate Vaccine", true},
	{"MMR (1st dose)", "9-12 months", 39, "Measles, Mumps, Rubella", true},
	{"Varicella (Chickenpox)", "12-15 months", 52, "Protection against chickenpox", false},
	{"Hepatitis A (1st dose)", "12-23 months", 52, "First dose of Hepatitis A vaccine", false},
	{"MMR (2nd dose)", "4-6 years", 208, "Measles, Mumps, Rubella booster", true},
	{"DTaP (Booster)", "4-6 years", 208, "Diphtheria, Tetanus, Pertussis booster", true},
	{"IPV (Booster)", "4-6 years", 208, "Polio booster", true},
	{"HPV (1st dose)", "11-12 years", 572, "Human Papillomavirus vaccine", false},
	{"Tdap (Booster)", "11-12 years", 572, "Tetanus, Diphtheria, Pertussis booster", true},
}

type driveSpec struct {
	title      string
	desc       string
	driveType  string
	location   string
	address    string
	daysAhead  int
	start, end string
	organizer  string
}

var drives = []driveSpec{
	{
		"Free Polio Vaccination Camp",
		"Free OPV and IPV doses for children under five.",
		"vaccine",
		"City General Hospital",
		"12 Hospital Road",
		14, "09:00", "16:00",
		"City Health Department",
	},
	{
		"Child Safety Workshop",
		"Hands-on workshop on home safety and first aid for parents.",
		"safety",
		"Community Center, Downtown",
		"3 Main Square",
		19, "10:00", "14:00",
		"Community Volunteers",
	},
	{
		"MMR Vaccination Drive",
		"Catch-up MMR doses for children aged 9 months to 6 years.",
		"vaccine",
		"District Health Center",
		"45 District Avenue",
		24, "08:00", "17:00",
		"District Health Office",
	},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	var vaccinesInserted int
	for i, v := range vaccines {
		tag, err := pool.Exec(ctx, `
			INSERT INTO standard_vaccines (
				name, recommended_age, recommended_age_weeks,
				description, sequence_order, is_mandatory
			) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO NOTHING`,
			v.name, v.age, v.ageWeeks, v.desc, i+1, v.mandatory,
		)
		if err != nil {
			log.Fatalf("insert vaccine %s: %v", v.name, err)
		}
		vaccinesInserted += int(tag.RowsAffected())
	}

	var drivesInserted int
	for _, d := range drives {
		tag, err := pool.Exec(ctx, `
			INSERT INTO vaccine_drives (
				title, description, drive_type, location, address,
				drive_date, start_time, end_time, organizer, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
			ON CONFLICT (title, drive_date) DO NOTHING`,
			d.title, d.desc, d.driveType, d.location, d.address,
			time.Now().AddDate(0, 0, d.daysAhead), d.start, d.end, d.organizer,
		)
		if err != nil {
			log.Fatalf("insert drive %s: %v", d.title, err)
		}
		drivesInserted += int(tag.RowsAffected())
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Vaccines inserted: %d  (skipped %d already existing)\n", vaccinesInserted, len(vaccines)-vaccinesInserted)
	fmt.Printf("  Drives inserted:   %d  (skipped %d already existing)\n", drivesInserted, len(drives)-drivesInserted)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — register a user:")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/api/auth/register \\")
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"email\":\"parent@test.local\",\"password\":\"Passw0rd!\"}'")
	fmt.Println()
	fmt.Println("  Step 2 — browse the schedule with the returned access token:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/api/vaccines/schedule -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — drives are public, no token needed:")
	fmt.Println()
	fmt.Println("    curl -s http://localhost:8080/api/drives")
}
