package valueobjects

import "fmt"

// PaymentProvider records who is responsible for collecting payment.
type PaymentProvider string

const (
	// ProviderManual subscriptions are maintained by the operator and never polled.
	ProviderManual      PaymentProvider = "manual"
	ProviderMercadoPago PaymentProvider = "mercadopago"
)

func (p PaymentProvider) String() string {
	return string(p)
}

func (p PaymentProvider) IsValid() bool {
	return p == ProviderManual || p == ProviderMercadoPago
}

func ParsePaymentProvider(s string) (PaymentProvider, error) {
	p := PaymentProvider(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid payment provider: %q", s)
	}
	return p, nil
}
