// Package protocol defines the control datagrams the receiver sends back to the sender.
// Control datagrams are raw ASCII tokens, not framed packets.
package protocol

type Control byte

const (
	Nak Control = iota
	Ack
)

const (
	ACK_TOKEN = "notCorrupted"
	NAK_TOKEN = "corrupted"
)

// Bytes returns the wire representation of the control datagram.
// A new slice is returned on every call.
func (c Control) Bytes() []byte {
	switch c {
	case Ack:
		return []byte(ACK_TOKEN)
	case Nak:
		return []byte(NAK_TOKEN)
	}
	panic("protocol: unknown control datagram")
}

func (c Control) String() string {
	switch c {
	case Ack:
		return "ACK"
	case Nak:
		return "NAK"
	}
	return "UNKNOWN"
}
