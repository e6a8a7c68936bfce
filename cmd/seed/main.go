// Command seed provisions the initial database content: the admin and test
// users plus the starter country and bank reference data. Safe to re-run,
// everything is upserted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/term"

	"github.com/proyection/proyection-api/internal/server/auth"
	"github.com/proyection/proyection-api/internal/server/config"
	"github.com/proyection/proyection-api/internal/server/models"
	"github.com/proyection/proyection-api/internal/server/repositories/banks"
	"github.com/proyection/proyection-api/internal/server/repositories/countries"
	"github.com/proyection/proyection-api/internal/server/repositories/users"
)

const (
	adminEmail      = "admin@proyection.com"
	testEmail       = "test@proyection.com"
	defaultPassword = "password123"
)

func main() {
	uri := flag.String("d", "mongodb://localhost:27017", "mongodb connection uri")
	database := flag.String("n", "proyection", "database name")
	password := flag.String("p", "", "admin password (prompted when omitted and stdin is a terminal)")
	flag.Parse()

	if err := run(*uri, *database, *password); err != nil {
		log.Fatalf("seed error: %v", err)
	}
}

func run(uri, database, password string) error {
	if password == "" {
		password = promptPassword()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(database)
	userRepo := users.NewMongoRepository(db)
	countryRepo := countries.NewMongoRepository(db)
	bankRepo := banks.NewMongoRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	if err := seedUsers(ctx, userRepo, password); err != nil {
		return err
	}
	if err := seedCountries(ctx, countryRepo); err != nil {
		return err
	}
	if err := seedBanks(ctx, bankRepo); err != nil {
		return err
	}

	log.Println("seed complete")
	return nil
}

// promptPassword asks interactively when possible and otherwise falls back
// to the documented default.
func promptPassword() string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return defaultPassword
	}

	fmt.Fprint(os.Stderr, "admin password (empty for default): ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil || len(raw) == 0 {
		return defaultPassword
	}
	return string(raw)
}

func seedUsers(ctx context.Context, repo *users.MongoRepository, adminPassword string) error {
	hasher := auth.NewPasswordHasher(config.DefaultBcryptCost)

	adminHash, err := hasher.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	testHash, err := hasher.Hash(defaultPassword)
	if err != nil {
		return fmt.Errorf("hashing test password: %w", err)
	}

	seed := []*models.User{
		{
			ID:                uuid.NewString(),
			Email:             adminEmail,
			PasswordHash:      adminHash,
			FirstName:         "Admin",
			LastName:          "Proyection",
			Country:           "PE",
			PreferredCurrency: "USD",
			IsActive:          true,
			IsEmailVerified:   true,
		},
		{
			ID:                uuid.NewString(),
			Email:             testEmail,
			PasswordHash:      testHash,
			FirstName:         "Test",
			LastName:          "User",
			Country:           "PE",
			PreferredCurrency: "PEN",
			IsActive:          true,
		},
	}

	for _, u := range seed {
		if err := repo.UpsertByEmail(ctx, u); err != nil {
			return fmt.Errorf("upserting user %s: %w", u.Email, err)
		}
		log.Printf("seeded user %s", u.Email)
	}
	return nil
}

func seedCountries(ctx context.Context, repo *countries.MongoRepository) error {
	seed := []*models.Country{
		{Name: "Peru", NativeName: "Perú", ISOCode: "PE", ISO3Code: "PER", Flag: "pe", FlagEmoji: "🇵🇪", Continent: "South America", Currency: "PEN", DisplayOrder: 1},
		{Name: "United States", ISOCode: "US", ISO3Code: "USA", Flag: "us", FlagEmoji: "🇺🇸", Continent: "North America", Currency: "USD", DisplayOrder: 2},
		{Name: "Mexico", NativeName: "México", ISOCode: "MX", ISO3Code: "MEX", Flag: "mx", FlagEmoji: "🇲🇽", Continent: "North America", Currency: "MXN", DisplayOrder: 3},
		{Name: "Spain", NativeName: "España", ISOCode: "ES", ISO3Code: "ESP", Flag: "es", FlagEmoji: "🇪🇸", Continent: "Europe", Currency: "EUR", DisplayOrder: 4},
		{Name: "Colombia", ISOCode: "CO", ISO3Code: "COL", Flag: "co", FlagEmoji: "🇨🇴", Continent: "South America", Currency: "COP", DisplayOrder: 5},
	}

	for _, c := range seed {
		c.ID = uuid.NewString()
		c.IsActive = true
		if err := repo.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upserting country %s: %w", c.ISOCode, err)
		}
	}
	log.Printf("seeded %d countries", len(seed))
	return nil
}

func seedBanks(ctx context.Context, repo *banks.MongoRepository) error {
	seed := []*models.Bank{
		{Name: "Banco de Crédito del Perú", Code: "BCP", CountryCode: "PE", BankingType: models.BankingTypeCommercial, IsPopular: true, DisplayOrder: 1},
		{Name: "Interbank", Code: "IBK", CountryCode: "PE", BankingType: models.BankingTypeCommercial, IsPopular: true, DisplayOrder: 2},
		{Name: "BBVA Perú", Code: "BBVA-PE", CountryCode: "PE", BankingType: models.BankingTypeCommercial, IsPopular: true, DisplayOrder: 3},
		{Name: "Scotiabank Perú", Code: "SBP", CountryCode: "PE", BankingType: models.BankingTypeCommercial, DisplayOrder: 4},
		{Name: "Chase", Code: "CHASE", CountryCode: "US", BankingType: models.BankingTypeCommercial, IsPopular: true, SupportsInternational: true, DisplayOrder: 5},
		{Name: "Bank of America", Code: "BOFA", CountryCode: "US", BankingType: models.BankingTypeCommercial, SupportsInternational: true, DisplayOrder: 6},
		{Name: "BBVA México", Code: "BBVA-MX", CountryCode: "MX", BankingType: models.BankingTypeCommercial, IsPopular: true, DisplayOrder: 7},
		{Name: "Nubank", Code: "NU", CountryCode: "MX", BankingType: models.BankingTypeDigital, DisplayOrder: 8},
	}

	for _, b := range seed {
		b.ID = uuid.NewString()
		b.IsActive = true
		if err := repo.Upsert(ctx, b); err != nil {
			return fmt.Errorf("upserting bank %s: %w", b.Code, err)
		}
	}
	log.Printf("seeded %d banks", len(seed))
	return nil
}
