package model

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PaymentMethod
		wantErr bool
	}{
		{
			name:  "canonical form",
			input: "UPI",
			want:  PaymentUPI,
		},
		{
			name:  "lowercase",
			input: "cash",
			want:  PaymentCash,
		},
		{
			name:  "mixed case",
			input: "NetBanking",
			want:  PaymentNetBanking,
		},
		{
			name:  "empty means absent",
			input: "",
			want:  "",
		},
		{
			name:    "unknown method",
			input:   "cheque",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePaymentMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePaymentMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParsePaymentMethod(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentUPI, PaymentCash, PaymentCard, PaymentNetBanking} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if PaymentMethod("").Valid() {
		t.Error("empty payment method should not be valid")
	}
	if PaymentMethod("CHEQUE").Valid() {
		t.Error("unrecognized payment method should not be valid")
	}
}
