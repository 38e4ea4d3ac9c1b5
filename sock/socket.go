// Package sock manages the UDP socket the receiver listens on.
// Reads are pulled by the caller one datagram at a time; there is no background read loop.
package sock

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"os"
	"time"

	"bjoernblessin.de/udpfilereceiver/util/assert"
)

type Socket interface {
	// GetLocalAddress returns the local address of the UDP socket.
	// It errors if the socket is not initialized.
	GetLocalAddress() (netip.AddrPort, error)

	// Open binds the UDP socket to the given port on all interfaces.
	// Port 0 chooses a random free port.
	// Returns the local address of the socket and an error if any occurs.
	Open(port int) (*net.UDPAddr, error)

	// ReadFrom blocks until a datagram arrives or ctx is done.
	// The datagram is written into buf, a datagram larger than buf is truncated.
	// Returns the number of bytes read and the sender's address.
	// If ctx ends first, ctx.Err() is returned.
	ReadFrom(ctx context.Context, buf []byte) (int, *net.UDPAddr, error)

	// SendTo sends a byte array to the specified address.
	// Open() must be called before using this function.
	SendTo(addr *net.UDPAddr, data []byte) error

	// Close closes the UDP socket if it's open.
	Close() error
}

type udpSocket struct {
	udpSocket *net.UDPConn
}

func NewUDPSocket() *udpSocket {
	return &udpSocket{}
}

func (s *udpSocket) GetLocalAddress() (netip.AddrPort, error) {
	if s.udpSocket == nil {
		return netip.AddrPort{}, errors.New("UDP socket is not initialized")
	}
	return s.udpSocket.LocalAddr().(*net.UDPAddr).AddrPort(), nil
}

func (s *udpSocket) Open(port int) (*net.UDPAddr, error) {
	assert.Assert(s.udpSocket == nil, "UDP socket is already initialized. Call Close() before calling Open() again.")

	socket, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, err
	}

	s.udpSocket = socket

	return socket.LocalAddr().(*net.UDPAddr), nil
}

func (s *udpSocket) ReadFrom(ctx context.Context, buf []byte) (int, *net.UDPAddr, error) {
	assert.IsNotNil(s.udpSocket, "UDP socket is not initialized.")

	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	deadline, hasDeadline := ctx.Deadline() // zero time clears any previous deadline
	if err := s.udpSocket.SetReadDeadline(deadline); err != nil {
		return 0, nil, err
	}

	// Unblock the pending read when ctx is cancelled
	stop := context.AfterFunc(ctx, func() {
		_ = s.udpSocket.SetReadDeadline(time.Now())
	})
	defer stop()

	n, addr, err := s.udpSocket.ReadFromUDP(buf)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, nil, ctxErr
			}
			if hasDeadline {
				// The socket deadline may fire just before the context timer does
				return 0, nil, context.DeadlineExceeded
			}
		}
		return 0, nil, err
	}

	return n, addr, nil
}

func (s *udpSocket) SendTo(addr *net.UDPAddr, data []byte) error {
	assert.IsNotNil(s.udpSocket, "UDP socket is not initialized.")

	_, err := s.udpSocket.WriteToUDP(data, addr)
	if err != nil {
		return err
	}

	return nil
}

func (s *udpSocket) Close() error {
	if s.udpSocket == nil {
		return nil
	}

	err := s.udpSocket.Close()
	if err != nil {
		return err
	}

	s.udpSocket = nil

	return nil
}
