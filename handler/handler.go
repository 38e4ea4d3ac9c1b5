// Package handler implements the receiving side of a stop-and-wait file transfer.
// It pulls datagrams from the socket one at a time, verifies and classifies them,
// answers every decodable datagram with exactly one ACK or NAK, and hands accepted
// payloads to the sink in order.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"bjoernblessin.de/udpfilereceiver/common"
	"bjoernblessin.de/udpfilereceiver/sequencing/reconstruction"
	"bjoernblessin.de/udpfilereceiver/sock"
	"bjoernblessin.de/udpfilereceiver/util/logger"
	"bjoernblessin.de/udpfilereceiver/util/observer"
)

var ErrIdleTimeout = errors.New("no datagram received within idle timeout")

// PacketHandler runs exactly one transfer. It is not safe for concurrent use.
type PacketHandler struct {
	socket      sock.Socket
	openSink    reconstruction.Opener
	events      *observer.Observable[Event]
	idleTimeout time.Duration
	linger      time.Duration
	buffer      []byte
}

func NewPacketHandler(socket sock.Socket, openSink reconstruction.Opener) *PacketHandler {
	return &PacketHandler{
		socket:      socket,
		openSink:    openSink,
		events:      observer.NewObservable[Event](common.EVENT_BUFFER_SIZE),
		idleTimeout: common.IDLE_TIMEOUT,
		linger:      common.LINGER,
		buffer:      make([]byte, common.UDP_BUFFER_SIZE_BYTES),
	}
}

// SetIdleTimeout bounds every blocking receive. Zero waits forever.
func (h *PacketHandler) SetIdleTimeout(d time.Duration) {
	h.idleTimeout = d
}

// SetLinger sets how long retransmitted end markers are still answered after the transfer completed.
func (h *PacketHandler) SetLinger(d time.Duration) {
	h.linger = d
}

// Subscribe returns a channel of receiver events.
// The channel is closed when ListenToPackets returns.
func (h *PacketHandler) Subscribe() chan Event {
	return h.events.Subscribe()
}

// ListenToPackets receives one file: first the path packet, then data packets until the end marker.
// It blocks until the transfer completed, ctx is done, or a fatal error occurs.
// The returned session is nil if the path packet was never accepted.
// Corrupted and truncated datagrams are never fatal; sink I/O errors are.
func (h *PacketHandler) ListenToPackets(ctx context.Context) (*Session, error) {
	defer h.events.Close()

	session, err := h.awaitPath(ctx)
	if err != nil {
		return nil, err
	}

	err = h.awaitData(ctx, session)

	closeErr := session.closeSink()
	if err == nil && closeErr != nil {
		err = closeErr
	}

	return session, err
}

// receive reads the next datagram into h.buffer, bounded by the idle timeout if one is set.
func (h *PacketHandler) receive(ctx context.Context) ([]byte, *net.UDPAddr, error) {
	readCtx := ctx
	if h.idleTimeout > 0 {
		var cancel context.CancelFunc
		readCtx, cancel = context.WithTimeout(ctx, h.idleTimeout)
		defer cancel()
	}

	n, addr, err := h.socket.ReadFrom(readCtx, h.buffer)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil && h.idleTimeout > 0 {
			return nil, nil, fmt.Errorf("%w (%v)", ErrIdleTimeout, h.idleTimeout)
		}
		return nil, nil, err
	}

	return h.buffer[:n], addr, nil
}

func (h *PacketHandler) notify(event Event) {
	logger.Tracef("EVENT %s %v", event.Type, event)
	h.events.NotifyObservers(event)
}
