package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidRequest wraps every validation failure of a CreateTransferRequest.
var ErrInvalidRequest = errors.New("invalid transfer request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateTransferRequest is the input of a new wire transfer.
type CreateTransferRequest struct {
	DebtorName        string          `json:"debtor_name" validate:"required"`
	InstitutionNumber string          `json:"institution_number" validate:"required"`
	TransitNumber     string          `json:"transit_number" validate:"required"`
	AccountNumber     string          `json:"account_number" validate:"required"`
	CreditorName      string          `json:"creditor_name" validate:"required"`
	CreditorIBAN      string          `json:"creditor_iban" validate:"required"`
	CreditorBIC       string          `json:"creditor_bic" validate:"required"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency" validate:"required,len=3,alpha"`
	Purpose           string          `json:"purpose" validate:"required"`
}

// Validate checks every required field and that the amount is positive.
func (r CreateTransferRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return fmt.Errorf("%w: missing required field: %s", ErrInvalidRequest, fe.Field())
			}
			return fmt.Errorf("%w: invalid field: %s", ErrInvalidRequest, fe.Field())
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if r.Amount.IsZero() {
		return fmt.Errorf("%w: missing required field: amount", ErrInvalidRequest)
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	return nil
}
