package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how a payment was received.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCash         PaymentMethod = "cash"
	MethodCheck        PaymentMethod = "check"
)

var ErrPaymentNotFound = errors.New("payment not found")

// ValidPaymentMethod reports whether m is one of the known payment methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodBankTransfer, MethodCash, MethodCheck:
		return true
	}
	return false
}

// Payment is money received against a project. A project's total paid is
// never stored; it is always the sum of its payment amounts at read time.
type Payment struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID     `json:"project_id" gorm:"type:uuid;not null;index"`
	Amount      float64       `json:"amount" gorm:"not null"`
	PaymentDate time.Time     `json:"payment_date" gorm:"not null"`
	Method      PaymentMethod `json:"method" gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
}
