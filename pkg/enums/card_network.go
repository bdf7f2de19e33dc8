package enums

// CardNetwork is the card brand detected from a card number prefix.
type CardNetwork string

const (
	CardNetworkVisa       CardNetwork = "visa"
	CardNetworkMastercard CardNetwork = "mastercard"
	CardNetworkAmex       CardNetwork = "amex"
	CardNetworkDiscover   CardNetwork = "discover"
	CardNetworkJCB        CardNetwork = "jcb"
	CardNetworkDiners     CardNetwork = "diners"
	CardNetworkMeeza      CardNetwork = "meeza"
	CardNetworkUnknown    CardNetwork = "unknown"
)

// String implements fmt.Stringer.
func (c CardNetwork) String() string {
	return string(c)
}
