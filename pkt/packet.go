package pkt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"bjoernblessin.de/udpfilereceiver/common"
)

// Header represents the fixed file transfer datagram header.
// Format (all fields big-endian):
//
//	+--------+--------+--------+--------+--------+--------+--------+--------+
//	|                                                                       |
//	|                          Checksum (64 bits)                           |
//	|                                                                       |
//	+--------+--------+--------+--------+--------+--------+--------+--------+
//	|                                   |                                   |
//	|      Packet Number (32 bits)      |     Payload Length (32 bits)      |
//	|                                   |                                   |
//	+--------+--------+--------+--------+--------+--------+--------+--------+
//	|                                                                       |
//	|                      Payload (up to 984 bytes)                        |
//	|                                                                       |
//	+--------+--------+--------+--------+--------+--------+--------+--------+
//
// Header size: 16 bytes. Total datagram size: at most 1000 bytes.
type Header struct {
	Checksum [8]byte // CRC-32 over everything after this field, zero-extended to 64 bits
	PktNum   [4]byte // Packet number; 0 for the path packet
	Length   [4]byte // Number of valid payload bytes
}

// Payload is everything after the header as received, including any padding after Length bytes.
type Payload []byte

type Packet struct {
	Header  Header
	Payload Payload
}

var (
	ErrTruncated = errors.New("pkt: datagram shorter than header")
	ErrBadLength = errors.New("pkt: payload length exceeds payload region")
)

// ParsePacket decodes a raw datagram. The payload is copied, data may be reused afterwards.
// Errors with ErrTruncated if data is shorter than the fixed header.
func ParsePacket(data []byte) (*Packet, error) {
	if len(data) < common.HEADER_SIZE_BYTES {
		return &Packet{}, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncated, len(data), common.HEADER_SIZE_BYTES)
	}

	header := Header{
		Checksum: [8]byte(data[0:8]),
		PktNum:   [4]byte(data[8:12]),
		Length:   [4]byte(data[12:16]),
	}

	payload := make(Payload, len(data)-common.HEADER_SIZE_BYTES)
	copy(payload, data[common.HEADER_SIZE_BYTES:])

	return &Packet{
		Header:  header,
		Payload: payload,
	}, nil
}

// NewPacket builds a packet carrying data with the given packet number.
// The checksum is left empty, see SetChecksum.
func NewPacket(pktNum uint32, data []byte) *Packet {
	p := &Packet{Payload: append(Payload(nil), data...)}
	binary.BigEndian.PutUint32(p.Header.PktNum[:], pktNum)
	binary.BigEndian.PutUint32(p.Header.Length[:], uint32(len(data)))
	return p
}

// ToByteArray serializes the Packet struct into a byte array.
// Makes a complete copy of all packet data into a new byte slice.
// Returns a byte array containing the header (16 bytes) followed by the payload.
func (p *Packet) ToByteArray() []byte {
	data := make([]byte, 0, common.HEADER_SIZE_BYTES+len(p.Payload))
	data = append(data, p.Header.Checksum[:]...)
	data = append(data, p.Header.PktNum[:]...)
	data = append(data, p.Header.Length[:]...)
	data = append(data, p.Payload...)

	return data
}

func (p *Packet) GetPktNum() uint32 {
	return binary.BigEndian.Uint32(p.Header.PktNum[:])
}

func (p *Packet) GetLength() uint32 {
	return binary.BigEndian.Uint32(p.Header.Length[:])
}

func (p *Packet) GetChecksum() uint64 {
	return binary.BigEndian.Uint64(p.Header.Checksum[:])
}

// ValidateLength checks the declared payload length against the protocol maximum and the bytes actually received.
func (p *Packet) ValidateLength() error {
	length := p.GetLength()
	if length > common.MAX_PAYLOAD_SIZE_BYTES {
		return fmt.Errorf("%w: %d > %d", ErrBadLength, length, common.MAX_PAYLOAD_SIZE_BYTES)
	}
	if int64(length) > int64(len(p.Payload)) {
		return fmt.Errorf("%w: %d > %d received", ErrBadLength, length, len(p.Payload))
	}
	return nil
}

// Data returns the valid payload bytes, bounded by the length field.
// Call ValidateLength first, Data panics on an inconsistent length.
func (p *Packet) Data() []byte {
	return p.Payload[:p.GetLength()]
}

// Path interprets the valid payload as a file path.
// Trailing whitespace and NUL padding (every byte <= 0x20) is removed.
func (p *Packet) Path() string {
	return string(bytes.TrimRightFunc(p.Data(), func(r rune) bool { return r <= ' ' }))
}

func (p *Packet) String() string {
	return "{ " +
		fmt.Sprintf("Chksum:0x%016X ", p.GetChecksum()) +
		fmt.Sprintf("PktNum:%d ", p.GetPktNum()) +
		fmt.Sprintf("Len:%d ", p.GetLength()) +
		fmt.Sprintf("Received:%d ", len(p.Payload)) +
		"}"
}
