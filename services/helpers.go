package services

import (
	"fmt"
	"strconv"
	"strings"

	"klinika.admin/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// applyString overwrites dst when the form carried the field.
func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// applyID parses a submitted foreign key into dst. A missing field keeps dst.
func applyID(dst *uint, src *string, field string) error {
	if src == nil {
		return nil
	}
	raw := strings.TrimSpace(*src)
	if raw == "" {
		*dst = 0
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("%s must be a positive number", field)
	}
	*dst = uint(id)
	return nil
}

// applyPrice parses a submitted price into dst. A missing field keeps dst.
// Only "." is accepted as the decimal separator; commas are rejected.
func applyPrice(dst *decimal.Decimal, src *string) error {
	if src == nil {
		return nil
	}
	raw := strings.TrimSpace(*src)
	if raw == "" {
		return fmt.Errorf("Price is required")
	}
	if strings.Contains(raw, ",") {
		return fmt.Errorf("Price must use a dot as decimal separator")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("Price must be a number")
	}
	if price.IsNegative() {
		return fmt.Errorf("Price cannot be negative")
	}
	*dst = price.Round(2)
	return nil
}

// validateEntity runs the struct tags of entity. Submitted values are
// sanitised before they reach the entity, stored ones are never rewritten.
// The returned message is suitable for a flash message.
func validateEntity(validate *validator.Validate, entity any) error {
	if err := validate.Struct(entity); err != nil {
		return fmt.Errorf("%s", utils.ValidationMessage(err))
	}
	return nil
}
