package gateway

import "fmt"

// Registry maps a payment method name to a gateway constructor. Gateways are
// built per request from the resolved Config, so credential changes made in
// the dashboard take effect immediately.
type Registry struct {
	constructors map[string]func(Config) (PaymentGateway, error)
}

func NewRegistry() *Registry {
	return &Registry{
		constructors: map[string]func(Config) (PaymentGateway, error){
			GatewayStripe: func(conf Config) (PaymentGateway, error) {
				if !conf.Stripe.Enabled {
					return nil, ErrGatewayDisabled
				}
				return NewStripeGateway(conf.Stripe), nil
			},
			GatewayPayPal: func(conf Config) (PaymentGateway, error) {
				if !conf.PayPal.Enabled {
					return nil, ErrGatewayDisabled
				}
				return NewPayPalGateway(conf.PayPal)
			},
			GatewayRazorpay: func(conf Config) (PaymentGateway, error) {
				if !conf.Razorpay.Enabled {
					return nil, ErrGatewayDisabled
				}
				return NewRazorpayGateway(conf.Razorpay), nil
			},
		},
	}
}

// Register adds or replaces a gateway constructor under name.
func (r *Registry) Register(name string, construct func(Config) (PaymentGateway, error)) {
	r.constructors[name] = construct
}

// Gateway resolves a payment method name against conf.
func (r *Registry) Gateway(name string, conf Config) (PaymentGateway, error) {
	construct, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%q -> %w", name, ErrUnknownGateway)
	}

	return construct(conf)
}

// EnabledGateways lists the method names usable under conf, in a stable
// order.
func (r *Registry) EnabledGateways(conf Config) []string {
	enabled := make([]string, 0, len(r.constructors))
	for _, name := range []string{GatewayStripe, GatewayPayPal, GatewayRazorpay} {
		if _, err := r.Gateway(name, conf); err == nil {
			enabled = append(enabled, name)
		}
	}

	return enabled
}
