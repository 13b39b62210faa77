package main

import (
	"log"
	"os"

	"bikerental/internal/database"
	"bikerental/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "bikerental.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Bike{},
		&domain.Booking{},
		&domain.Payment{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (safe order for foreign keys)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM bikes")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Name:         "Admin",
		Email:        "admin@bikerental.in",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@bikerental.in / admin123")

	riders := []struct {
		name, email, phone, license string
	}{
		{"Rahul Sharma", "rahul@gmail.com", "+91 98100 12345", "DL-2023-0012345"},
		{"Priya Patel", "priya@gmail.com", "+91 98100 23456", "DL-2022-0067890"},
		{"Arjun Mehta", "arjun@gmail.com", "+91 98100 34567", "DL-2024-0011122"},
	}
	for _, r := range riders {
		hash, _ := bcrypt.GenerateFromPassword([]byte("rider123"), bcrypt.DefaultCost)
		db.Create(&domain.User{
			Name:          r.name,
			Email:         r.email,
			PasswordHash:  string(hash),
			Phone:         r.phone,
			LicenseNumber: r.license,
			Role:          domain.RoleUser,
		})
	}

	// ================== BIKES ==================
	log.Println("Creating bikes...")

	connaughtPlace := domain.GeoPoint{Lat: 28.6139, Lng: 77.2090, Address: "Connaught Place, New Delhi"}
	hauzKhas := domain.GeoPoint{Lat: 28.5494, Lng: 77.2001, Address: "Hauz Khas Village, New Delhi"}

	bikes := []domain.Bike{
		{
			Name:               "KTM Duke 390",
			Brand:              domain.BrandKTM,
			Model:              "Duke 390",
			Image:              "https://images.unsplash.com/photo-1558981806-ec527fa84c39?w=800&h=600&fit=crop",
			RegistrationNumber: "DL-01-AB-1234",
			Year:               2023,
			PricePerDay:        2500,
			PricePerHour:       250,
			SecurityDeposit:    5000,
			Available:          true,
			Rating:             4.8,
			TotalRides:         45,
			Location:           connaughtPlace,
		},
		{
			Name:               "Royal Enfield Classic 350",
			Brand:              domain.BrandRoyalEnfield,
			Model:              "Classic 350",
			Image:              "https://images.unsplash.com/photo-1609630875171-b1321377ee65?w=800&h=600&fit=crop",
			RegistrationNumber: "DL-02-CD-5678",
			Year:               2023,
			PricePerDay:        1000,
			PricePerHour:       85,
			SecurityDeposit:    3000,
			Available:          true,
			Rating:             4.6,
			TotalRides:         38,
			Location:           connaughtPlace,
		},
		{
			Name:               "KTM Duke 250",
			Brand:              domain.BrandKTM,
			Model:              "Duke 250",
			Image:              "https://images.unsplash.com/photo-1568772585407-9361f9bf3a87?w=800&h=600&fit=crop",
			RegistrationNumber: "DL-03-EF-9012",
			Year:               2023,
			PricePerDay:        900,
			PricePerHour:       75,
			SecurityDeposit:    2500,
			Available:          true,
			Rating:             4.5,
			TotalRides:         31,
			Location:           hauzKhas,
		},
		{
			Name:               "Scotty Electric Pro",
			Brand:              domain.BrandScotty,
			Model:              "Electric Pro",
			Image:              "https://images.unsplash.com/photo-1571068316344-75bc76f77890?w=800&h=600&fit=crop",
			RegistrationNumber: "DL-04-GH-3456",
			Year:               2024,
			PricePerDay:        600,
			PricePerHour:       50,
			SecurityDeposit:    1500,
			Available:          true,
			Rating:             4.3,
			TotalRides:         12,
			Location:           hauzKhas,
		},
	}
	for i := range bikes {
		db.Create(&bikes[i])
	}

	log.Printf("Seed complete: %d users, %d bikes", len(riders)+1, len(bikes))
}
