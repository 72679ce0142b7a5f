package order

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/topup-commerce/internal"
	paymentDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/payment"
)

// PaymentDetailsDTO carries the method-specific fields a customer submits at
// checkout. Only the field matching the chosen method is read.
type PaymentDetailsDTO struct {
	CustomerBankAccountNumber *string `json:"customerBankAccountNumber,omitempty"`
	CustomerPromptpayNumber   *string `json:"customerPromptpayNumber,omitempty"`
	CustomerCardNumber        *string `json:"customerCardNumber,omitempty"`
	PaymentProofPath          *string `json:"paymentProofPath,omitempty"`
}

// CreateOrderDTO is the checkout request. PackagePrice must be submitted but
// is advisory only: the stored package price always wins, a mismatch is
// logged and ignored.
type CreateOrderDTO struct {
	ProductID      string            `json:"productId"`
	PackageID      string            `json:"packageId"`
	PackagePrice   *decimal.Decimal  `json:"packagePrice,omitempty"`
	GameUID        *string           `json:"gameUID,omitempty"`
	GameServer     *string           `json:"gameServer,omitempty"`
	PaymentMethod  string            `json:"paymentMethod"`
	PaymentDetails PaymentDetailsDTO `json:"paymentDetails"`
}

// Validate collects every missing required field into one response. The
// acting user id comes from the auth context rather than the body, so it is
// passed in alongside the decoded request.
func (dto CreateOrderDTO) Validate(userID string) *internal.AppError {
	var fieldErrors []internal.ValidationError
	if userID == "" {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field:   "userId",
			Message: "userId is required",
			Code:    string(internal.ErrCodeValidationFailed),
		})
	}
	if dto.ProductID == "" {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field:   "productId",
			Message: "productId is required",
			Code:    string(internal.ErrCodeValidationFailed),
		})
	}
	if dto.PackageID == "" {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field:   "packageId",
			Message: "packageId is required",
			Code:    string(internal.ErrCodeValidationFailed),
		})
	}
	if dto.PackagePrice == nil {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field:   "packagePrice",
			Message: "packagePrice is required",
			Code:    string(internal.ErrCodeValidationFailed),
		})
	}
	if dto.PaymentMethod == "" {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field:   "paymentMethod",
			Message: "paymentMethod is required",
			Code:    string(internal.ErrCodeValidationFailed),
		})
	}
	if len(fieldErrors) > 0 {
		return internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fieldErrors})
	}
	return nil
}

// MapPaymentMethod turns the short token the client submits into the
// canonical stored method name.
func MapPaymentMethod(token string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "creditcard":
		return paymentDatamodel.MethodCreditCard, true
	case "banktransfer":
		return paymentDatamodel.MethodBankTransfer, true
	case "promptpay":
		return paymentDatamodel.MethodPromptpay, true
	case "truewallet":
		return paymentDatamodel.MethodTrueWallet, true
	default:
		return "", false
	}
}

// maskCardNumber keeps only the last four digits of a card number.
func maskCardNumber(number string) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return "****" + string(digits[len(digits)-4:])
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}
