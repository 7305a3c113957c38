package model

import (
	"fmt"
	"strings"
)

// PaymentMethod identifies how an expense was paid. The empty string means the
// text carried no recognizable payment signal; that is an absent field, not an
// error.
type PaymentMethod string

// Recognized payment methods.
const (
	PaymentUPI        PaymentMethod = "UPI"
	PaymentCash       PaymentMethod = "CASH"
	PaymentCard       PaymentMethod = "CARD"
	PaymentNetBanking PaymentMethod = "NETBANKING"
)

// Valid reports whether m is a recognized payment method. The empty value is
// not valid; callers should check for absence separately.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentCash, PaymentCard, PaymentNetBanking:
		return true
	}
	return false
}

// ParsePaymentMethod validates a raw string against the recognized payment
// methods, ignoring case. The empty string parses to the absent value.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return "", nil
	}
	m := PaymentMethod(strings.ToUpper(s))
	if !m.Valid() {
		return "", fmt.Errorf("unknown payment method: %q", s)
	}
	return m, nil
}
