package models

import (
	"strings"
	"time"

	"github.com/goodlandcafe/pos_backend/utils"
)

const BusinessProfileID = 1

const (
	DefaultBusinessName       = "GoodLand Cafe"
	DefaultTaxID              = "908-767-876-000"
	DefaultRegistrationStatus = "VAT_Reg"
	DefaultBusinessAddress    = "Cariño Street, Baguio City"
	DefaultBusinessPhone      = "(239) 555-0298"
)

// BusinessProfile is the single row printed on receipts. Logo holds an encoded image.
type BusinessProfile struct {
	ID                 int       `gorm:"primary_key" json:"-"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	TaxID              string    `gorm:"size:50" json:"tax_id"`
	RegistrationStatus string    `gorm:"size:50" json:"registration_status"`
	Address            string    `gorm:"size:255" json:"address"`
	Phone              string    `gorm:"size:30" json:"phone"`
	Logo               []byte    `gorm:"type:mediumblob" json:"logo,omitempty"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusinessProfile struct {
	Name               string `json:"name" validate:"required,max=255"`
	TaxID              string `json:"tax_id" validate:"max=50"`
	RegistrationStatus string `json:"registration_status" validate:"max=50"`
	Address            string `json:"address" validate:"max=255"`
	Phone              string `json:"phone"`
	Logo               []byte `json:"logo"`
}

func DefaultBusinessProfile() BusinessProfile {
	return BusinessProfile{
		ID:                 BusinessProfileID,
		Name:               DefaultBusinessName,
		TaxID:              DefaultTaxID,
		RegistrationStatus: DefaultRegistrationStatus,
		Address:            DefaultBusinessAddress,
		Phone:              DefaultBusinessPhone,
	}
}

// WithDefaults fills blank fields the receipt prints.
func (p BusinessProfile) WithDefaults() BusinessProfile {
	d := DefaultBusinessProfile()
	if strings.TrimSpace(p.Name) == "" {
		p.Name = d.Name
	}
	if strings.TrimSpace(p.TaxID) == "" {
		p.TaxID = d.TaxID
	}
	if strings.TrimSpace(p.RegistrationStatus) == "" {
		p.RegistrationStatus = d.RegistrationStatus
	}
	if strings.TrimSpace(p.Address) == "" {
		p.Address = d.Address
	}
	if strings.TrimSpace(p.Phone) == "" {
		p.Phone = d.Phone
	}
	p.ID = BusinessProfileID
	return p
}

func (input NewBusinessProfile) ToBusinessProfile() (*BusinessProfile, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, NewValidationError("businessProfile", err)
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, NewValidationError("phone", err)
		}
	}
	p := BusinessProfile{
		ID:                 BusinessProfileID,
		Name:               strings.TrimSpace(input.Name),
		TaxID:              strings.TrimSpace(input.TaxID),
		RegistrationStatus: strings.TrimSpace(input.RegistrationStatus),
		Address:            strings.TrimSpace(input.Address),
		Phone:              strings.TrimSpace(input.Phone),
		Logo:               input.Logo,
	}
	return &p, nil
}
