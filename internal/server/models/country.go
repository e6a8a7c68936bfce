package models

import "time"

// Country is reference data: ISO 3166 identity plus display metadata.
type Country struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	NativeName   string    `bson:"native_name,omitempty" json:"nativeName,omitempty"`
	ISOCode      string    `bson:"iso_code" json:"isoCode"`
	ISO3Code     string    `bson:"iso3_code,omitempty" json:"iso3Code,omitempty"`
	NumericCode  string    `bson:"numeric_code,omitempty" json:"numericCode,omitempty"`
	Flag         string    `bson:"flag" json:"flag"`
	FlagEmoji    string    `bson:"flag_emoji,omitempty" json:"flagEmoji,omitempty"`
	Continent    string    `bson:"continent" json:"continent"`
	Currency     string    `bson:"currency,omitempty" json:"currency,omitempty"`
	DisplayOrder int       `bson:"display_order" json:"displayOrder"`
	IsActive     bool      `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
