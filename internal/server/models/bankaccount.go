package models

import "time"

// BankAccount is a user-owned account. Deletion is logical: IsDeleted flips
// and DeletedAt is set, the document stays for restore/audit.
type BankAccount struct {
	ID            string     `bson:"_id" json:"id"`
	UserID        string     `bson:"user_id" json:"userId"`
	CountryID     string     `bson:"country_id" json:"countryId"`
	BankID        string     `bson:"bank_id" json:"bankId"`
	Name          string     `bson:"name" json:"name"`
	Description   string     `bson:"description,omitempty" json:"description,omitempty"`
	CurrentAmount float64    `bson:"current_amount" json:"currentAmount"`
	Currency      string     `bson:"currency" json:"currency"`
	AccountNumber string     `bson:"account_number,omitempty" json:"accountNumber,omitempty"`
	IsActive      bool       `bson:"is_active" json:"isActive"`
	IsDeleted     bool       `bson:"is_deleted" json:"isDeleted"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deleted_at,omitempty" json:"deletedAt,omitempty"`
}
