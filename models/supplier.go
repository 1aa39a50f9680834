package models

import (
	"errors"
	"strings"
	"time"

	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/google/uuid"
)

type Supplier struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewSupplier struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=100"`
	Phone string `json:"phone"`
}

func (input NewSupplier) ToSupplier() (*Supplier, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, NewValidationError("supplier", err)
	}
	email := strings.TrimSpace(input.Email)
	// the ordering screen only mails .com addresses
	if !strings.HasSuffix(strings.ToLower(email), ".com") {
		return nil, NewValidationError("email", errors.New("needs to be a valid email"))
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, NewValidationError("phone", err)
		}
	}
	return &Supplier{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(input.Name),
		Email: email,
		Phone: input.Phone,
	}, nil
}
