package models

import "time"

// Banking types accepted in Bank.BankingType.
const (
	BankingTypeCommercial  = "commercial"
	BankingTypeInvestment  = "investment"
	BankingTypeCentral     = "central"
	BankingTypeCooperative = "cooperative"
	BankingTypeDigital     = "digital"
)

// Bank is reference data describing a bank selectable for accounts.
type Bank struct {
	ID                    string    `bson:"_id" json:"id"`
	Name                  string    `bson:"name" json:"name"`
	Code                  string    `bson:"code" json:"code"`
	Icon                  string    `bson:"icon" json:"icon"`
	Logo                  string    `bson:"logo,omitempty" json:"logo,omitempty"`
	CountryCode           string    `bson:"country_code" json:"countryCode"`
	Website               string    `bson:"website,omitempty" json:"website,omitempty"`
	Phone                 string    `bson:"phone,omitempty" json:"phone,omitempty"`
	BankingType           string    `bson:"banking_type" json:"bankingType"`
	SupportsInternational bool      `bson:"supports_international" json:"supportsInternational"`
	IsActive              bool      `bson:"is_active" json:"isActive"`
	IsPopular             bool      `bson:"is_popular" json:"isPopular"`
	DisplayOrder          int       `bson:"display_order" json:"displayOrder"`
	CreatedAt             time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updatedAt"`
}
