package checkout

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"pos/internal/models"
)

// Reasons a checkout cannot be confirmed yet. They are shown to the operator
// next to the disabled confirm action.
const (
	ReasonEmptyCart         = "cart is empty"
	ReasonMethodNotAccepted = "payment method is not accepted on this channel"
	ReasonCashMissing       = "enter the cash received"
	ReasonCashShort         = "cash received is less than the total"
	ReasonReferenceMissing  = "delivery reference code is required"
	ReasonGrabReference     = "grab reference must be GF- followed by at least 2 letters or digits"
	ReasonLinemanReference  = "lineman reference must be exactly 4 digits"
)

const (
	grabPrefix             = "GF-"
	grabMinimumLength      = len(grabPrefix) + 2
	linemanReferenceDigits = 4
)

// Rule describes how orders on one channel are validated and recorded.
type Rule struct {
	Channel models.Channel
	// Delivery orders are paid out later by the aggregator and start unsettled.
	Delivery bool
	// Methods the operator may pick; the first one is the default.
	Methods []models.PaymentMethod
	// Reference normalizes the delivery reference code. A non-empty reason
	// blocks the checkout. Nil means the channel takes no reference.
	Reference func(raw string) (normalized string, reason string)
}

func (r Rule) accepts(m models.PaymentMethod) bool {
	for _, allowed := range r.Methods {
		if allowed == m {
			return true
		}
	}
	return false
}

// DefaultMethod is the payment method preselected when a checkout starts.
func (r Rule) DefaultMethod() models.PaymentMethod {
	if len(r.Methods) == 0 {
		return ""
	}
	return r.Methods[0]
}

var rules = map[models.Channel]Rule{
	models.ChannelPOS: {
		Channel: models.ChannelPOS,
		Methods: []models.PaymentMethod{models.PaymentCash, models.PaymentPromptPay},
	},
	models.ChannelGrab: {
		Channel:   models.ChannelGrab,
		Delivery:  true,
		Methods:   []models.PaymentMethod{models.PaymentTransfer},
		Reference: grabReference,
	},
	models.ChannelLineman: {
		Channel:   models.ChannelLineman,
		Delivery:  true,
		Methods:   []models.PaymentMethod{models.PaymentTransfer},
		Reference: linemanReference,
	},
	models.ChannelShopee: {
		Channel:   models.ChannelShopee,
		Delivery:  true,
		Methods:   []models.PaymentMethod{models.PaymentTransfer},
		Reference: requiredReference,
	},
}

// RuleFor returns the checkout rule of ch.
func RuleFor(ch models.Channel) (Rule, bool) {
	r, ok := rules[ch]
	return r, ok
}

func requiredReference(raw string) (string, string) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", ReasonReferenceMissing
	}
	return ref, ""
}

// grabReference accepts the code with or without the GF- prefix.
func grabReference(raw string) (string, string) {
	ref := strings.ToUpper(strings.TrimSpace(raw))
	if ref == "" {
		return "", ReasonReferenceMissing
	}
	if !strings.HasPrefix(ref, grabPrefix) {
		ref = grabPrefix + ref
	}
	if len(ref) < grabMinimumLength {
		return ref, ReasonGrabReference
	}
	for _, r := range ref[len(grabPrefix):] {
		if !unicode.IsDigit(r) && !unicode.IsLetter(r) {
			return ref, ReasonGrabReference
		}
	}
	return ref, ""
}

func linemanReference(raw string) (string, string) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", ReasonReferenceMissing
	}
	if len(ref) != linemanReferenceDigits {
		return ref, ReasonLinemanReference
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			return ref, ReasonLinemanReference
		}
	}
	return ref, ""
}

// Verdict is the outcome of validating the current checkout input.
type Verdict struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	// Change is set for cash payments once a received amount is entered.
	Change        *float64             `json:"change,omitempty"`
	ReferenceCode string               `json:"referenceCode,omitempty"`
	Method        models.PaymentMethod `json:"method"`
}

func blocked(reason string) Verdict {
	return Verdict{Reason: reason}
}

// Validate checks in against the rule of the channel for an order of total
// with lineCount lines. It never returns an error; a failed check is a
// Verdict with a Reason.
func (r Rule) Validate(total float64, lineCount int, in Input) Verdict {
	if lineCount == 0 {
		return blocked(ReasonEmptyCart)
	}

	if r.Delivery {
		ref, reason := r.Reference(in.ReferenceCode)
		v := Verdict{ReferenceCode: ref, Method: r.DefaultMethod()}
		if reason != "" {
			v.Reason = reason
			return v
		}
		v.OK = true
		return v
	}

	method := in.Method
	if method == "" {
		method = r.DefaultMethod()
	}
	if !r.accepts(method) {
		return Verdict{Reason: ReasonMethodNotAccepted, Method: method}
	}

	v := Verdict{Method: method}
	if method != models.PaymentCash {
		v.OK = true
		return v
	}
	if in.CashReceived == nil {
		v.Reason = ReasonCashMissing
		return v
	}

	change := decimal.NewFromFloat(*in.CashReceived).Sub(decimal.NewFromFloat(total)).InexactFloat64()
	v.Change = &change
	if change < 0 {
		v.Reason = ReasonCashShort
		return v
	}
	v.OK = true
	return v
}
