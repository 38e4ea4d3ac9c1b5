package reconstruction

import (
	"fmt"
	"os"

	"bjoernblessin.de/udpfilereceiver/util/logger"
)

// OnDiskSink appends payloads to a file on disk.
type OnDiskSink struct {
	file         *os.File
	writtenBytes int64
}

// OpenOnDisk creates the file at path, or truncates it if it already exists, and opens it in append mode.
// It satisfies Opener.
func OpenOnDisk(path string) (Sink, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open destination file: %w", err)
	}

	logger.Debugf("Opened %s for reconstruction", path)

	return &OnDiskSink{file: file}, nil
}

func (s *OnDiskSink) Append(payload []byte) error {
	n, err := s.file.Write(payload)
	s.writtenBytes += int64(n)
	if err != nil {
		return fmt.Errorf("failed to write payload to %s: %w", s.file.Name(), err)
	}

	return nil
}

// Close syncs the file to disk before closing it.
func (s *OnDiskSink) Close() error {
	syncErr := s.file.Sync()
	closeErr := s.file.Close()
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", s.file.Name(), closeErr)
	}
	if syncErr != nil {
		return fmt.Errorf("failed to sync %s: %w", s.file.Name(), syncErr)
	}

	return nil
}

func (s *OnDiskSink) Name() string {
	return s.file.Name()
}

func (s *OnDiskSink) GetWrittenBytes() int64 {
	return s.writtenBytes
}
