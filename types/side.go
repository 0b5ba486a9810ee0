package types

// Side classifies an order book record. The sale variants mark records that
// resulted from a completed match rather than an open order; only the Side
// discriminant dictates settlement behavior downstream.
type Side string

const (
	SideAsk     Side = "ask"
	SideBid     Side = "bid"
	SideAskSale Side = "asksale"
	SideBidSale Side = "bidsale"
	SideUnknown Side = "unknown"
)

// ParseSide maps a raw side field onto a Side. Matching is case-sensitive;
// anything other than "ask" or "bid" comes back as SideUnknown.
func ParseSide(s string) Side {
	switch s {
	case "ask":
		return SideAsk
	case "bid":
		return SideBid
	}
	return SideUnknown
}

// IsSale reports whether the side marks a completed match.
func (s Side) IsSale() bool {
	return s == SideAskSale || s == SideBidSale
}
