package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical stored payment method values. The HTTP layer accepts short
// tokens (creditcard, banktransfer, promptpay, truewallet) and maps them
// to these before anything is persisted.
const (
	MethodCreditCard   = "Credit/Debit Card"
	MethodBankTransfer = "Bank Transfer"
	MethodPromptpay    = "Promptpay"
	MethodTrueWallet   = "True Wallet"
)

const (
	StatusInProgress = "In Progress"
	StatusSuccess    = "Success"
	StatusCancel     = "Cancel"
)

// Payment is the 1:1 payment attempt recorded alongside an order. Only the
// detail column matching the method is populated; the rest stay NULL.
type Payment struct {
	PaymentID   string          `json:"payment_id" gorm:"column:payment_id;primaryKey"`
	OrderID     string          `json:"order_id" gorm:"column:order_id;not null;uniqueIndex"`
	Method      string          `json:"method" gorm:"column:method;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(12,2)"`
	Status      string          `json:"status" gorm:"column:status;default:'In Progress'"`
	PaymentDate time.Time       `json:"payment_date" gorm:"column:payment_date;not null"`

	CustomerBankAccount      *string `json:"customer_bank_account,omitempty" gorm:"column:customer_bank_account"`
	CustomerTrueWalletNumber *string `json:"customer_true_wallet_number,omitempty" gorm:"column:customer_true_wallet_number"`
	CustomerPromptpayNumber  *string `json:"customer_promptpay_number,omitempty" gorm:"column:customer_promptpay_number"`
	CustomerCardNumber       *string `json:"customer_card_number,omitempty" gorm:"column:customer_card_number"`

	// TransactionID is filled in by settlement, which happens outside this
	// service.
	TransactionID    *string   `json:"transaction_id,omitempty" gorm:"column:transaction_id"`
	PaymentProofPath *string   `json:"payment_proof_path,omitempty" gorm:"column:payment_proof_path"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
