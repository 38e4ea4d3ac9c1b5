package common

import (
	"os"
	"time"

	"bjoernblessin.de/udpfilereceiver/util/logger"
)

const PACKET_SIZE_BYTES = 1000                                       // Fixed datagram size on the wire; larger datagrams are truncated by the socket read
const HEADER_SIZE_BYTES = 16                                         // checksum (8) + packet number (4) + payload length (4)
const CHECKSUM_SIZE_BYTES = 8                                        // Size of the checksum field at the start of every datagram
const MAX_PAYLOAD_SIZE_BYTES = PACKET_SIZE_BYTES - HEADER_SIZE_BYTES // 984
const PATH_PKT_NUM = 0                                               // The path packet always carries packet number 0
const FIRST_DATA_PKT_NUM = 0                                         // The first data packet after the path packet carries packet number 0
const LINGER_DURATION = time.Second * 2                              // How long retransmitted end markers are answered after the transfer completed
const UDP_BUFFER_SIZE_BYTES = PACKET_SIZE_BYTES                      // Number of bytes to read from socket per datagram
const EVENT_BUFFER_SIZE = 64                                         // Number of receiver events buffered per subscriber before they are dropped

const IDLE_TIMEOUT_ENV = "IDLE_TIMEOUT"
const LINGER_ENV = "LINGER"

// IDLE_TIMEOUT bounds every blocking receive. Zero means wait forever.
var IDLE_TIMEOUT time.Duration

// LINGER is LINGER_DURATION unless overridden by the LINGER environment variable.
var LINGER time.Duration = LINGER_DURATION

func init() {
	IDLE_TIMEOUT = durationFromEnv(IDLE_TIMEOUT_ENV, 0)
	LINGER = durationFromEnv(LINGER_ENV, LINGER_DURATION)
}

func durationFromEnv(name string, fallback time.Duration) time.Duration {
	envvar, present := os.LookupEnv(name)
	if !present || envvar == "" {
		return fallback
	}

	d, err := time.ParseDuration(envvar)
	if err != nil || d < 0 {
		logger.Warnf("Invalid duration '%s' in %s, using %v", envvar, name, fallback)
		return fallback
	}

	return d
}
