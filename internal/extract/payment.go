package extract

import (
	"strings"

	"kharcha/internal/model"
)

// Payment keywords in priority order. UPI app names come first because a
// sentence naming GPay or Paytm is a UPI payment even if it also says "paid
// online".
var paymentKeywords = []struct {
	method   model.PaymentMethod
	keywords []string
}{
	{model.PaymentUPI, []string{"upi", "gpay", "phonepe", "paytm", "bhim"}},
	{model.PaymentCash, []string{"cash"}},
	{model.PaymentCard, []string{"card", "swiped"}},
	{model.PaymentNetBanking, []string{"netbanking", "net banking", "online"}},
}

// PaymentMethod finds a payment signal in the text. The first matching
// keyword in priority order decides; false means the text carries no payment
// signal, which is absence, not an error.
func PaymentMethod(text string) (model.PaymentMethod, bool) {
	lower := strings.ToLower(text)
	for _, group := range paymentKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.method, true
			}
		}
	}
	return "", false
}
