package catalog

// Source identifies the vendor a record originated from.
type Source string

// Known vendor sources.
const (
	SourceToast    Source = "toast"
	SourceDoorDash Source = "doordash"
	SourceSquare   Source = "square"
)

// String returns the source as a string.
func (s Source) String() string { return string(s) }

// Valid reports whether the source is one of the known vendors.
func (s Source) Valid() bool {
	switch s {
	case SourceToast, SourceDoorDash, SourceSquare:
		return true
	}
	return false
}

// PaymentType is the canonical payment classification the vendor-specific
// payment and card-brand vocabularies map onto.
type PaymentType string

// Canonical payment types.
const (
	PaymentCredit   PaymentType = "credit"
	PaymentCash     PaymentType = "cash"
	PaymentWallet   PaymentType = "wallet"
	PaymentDoorDash PaymentType = "doordash"
	PaymentOther    PaymentType = "other"
)
