package transaction

import (
	"fmt"
	"strings"
)

// Direction tells which side of a transfer an account is on.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionOutgoing
	DirectionIncoming
)

func (d Direction) String() string {
	switch d {
	case DirectionOutgoing:
		return "outgoing"
	case DirectionIncoming:
		return "incoming"
	}

	return "unknown"
}

const (
	fromMarker = "từ "
	toMarker   = "đến "
)

// TransferCategory builds the category text stored on a transfer. The text
// is the only place the counterparty is recorded, so it must stay parseable
// by TransferDirection.
func TransferCategory(from, to string) string {
	return fmt.Sprintf("Chuyển tiền %s%s %s%s", fromMarker, from, toMarker, to)
}

// TransferDirection reads the direction of a transfer category relative to
// account. The sending side wins when the text names the account twice.
func TransferDirection(category, account string) Direction {
	switch {
	case strings.Contains(category, fromMarker+account):
		return DirectionOutgoing
	case strings.Contains(category, toMarker+account):
		return DirectionIncoming
	}

	return DirectionUnknown
}

// ReceivedBy reports whether a transfer category names account as the receiver.
func ReceivedBy(category, account string) bool {
	return strings.Contains(category, toMarker+account)
}

// DirectionFor is TransferDirection for transfers and DirectionUnknown otherwise.
func (t Transaction) DirectionFor(account string) Direction {
	if t.Type != TypeTransfer {
		return DirectionUnknown
	}

	return TransferDirection(t.Category, account)
}
