package pkt

import (
	"encoding/binary"
	"hash/crc32"

	"bjoernblessin.de/udpfilereceiver/common"
)

// SetChecksum calculates and sets the checksum for a given packet.
// The current checksum field is irrelevant and will be overwritten.
// No more modifications to the packet should be made after setting the checksum.
func SetChecksum(packet *Packet) {
	binary.BigEndian.PutUint64(packet.Header.Checksum[:], calculateChecksum(packet))
}

// calculateChecksum computes the CRC-32 (IEEE) of everything following the checksum field,
// i.e. packet number, length and the whole payload region as received.
// A fresh checksum is computed per call, no state is carried between packets.
func calculateChecksum(packet *Packet) uint64 {
	data := packet.ToByteArray()
	return uint64(crc32.ChecksumIEEE(data[common.CHECKSUM_SIZE_BYTES:]))
}

// VerifyChecksum validates the checksum of a packet to ensure data integrity.
// Returns true if the checksums match, false otherwise.
func VerifyChecksum(packet *Packet) bool {
	return calculateChecksum(packet) == packet.GetChecksum()
}
