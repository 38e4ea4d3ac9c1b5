// Package connection sends control datagrams to the sending peer.
package connection

import (
	"net"

	"bjoernblessin.de/udpfilereceiver/protocol"
	"bjoernblessin.de/udpfilereceiver/sock"
	"bjoernblessin.de/udpfilereceiver/util/logger"
)

// Peer is the sender of a transfer as observed on the last received datagram.
type Peer struct {
	Address *net.UDPAddr
	socket  sock.Socket
}

// NewPeer creates a new Peer reachable through socket at address.
func NewPeer(socket sock.Socket, address *net.UDPAddr) *Peer {
	return &Peer{
		Address: address,
		socket:  socket,
	}
}

// SendAcknowledgment tells the peer the last packet was received intact.
func (p *Peer) SendAcknowledgment() error {
	return p.sendControl(protocol.Ack)
}

// SendNegativeAcknowledgment requests a resend of the last packet.
func (p *Peer) SendNegativeAcknowledgment() error {
	return p.sendControl(protocol.Nak)
}

// sendControl sends a control datagram. It does not handle timeouts or resends, the peer retransmits.
func (p *Peer) sendControl(control protocol.Control) error {
	err := p.socket.SendTo(p.Address, control.Bytes())
	if err != nil {
		return err
	}

	logger.Tracef("%s TO %v", control, p.Address)

	return nil
}
