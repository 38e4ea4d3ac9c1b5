package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"bjoernblessin.de/udpfilereceiver/handler"
	"bjoernblessin.de/udpfilereceiver/sequencing/reconstruction"
	"bjoernblessin.de/udpfilereceiver/sock"
	"bjoernblessin.de/udpfilereceiver/util/logger"
)

func main() {
	port, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Usage: udpfilereceiver <port>")
		os.Exit(1)
	}

	log.Println("Running...")

	udpSocket := sock.NewUDPSocket()
	localAddr, err := udpSocket.Open(port)
	if err != nil {
		logger.Errorf("Failed to open UDP socket: %v", err)
		return
	}
	defer udpSocket.Close()

	fmt.Printf("Listening on %s:%d\n", localAddr.IP, localAddr.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	packetHandler := handler.NewPacketHandler(udpSocket, reconstruction.OpenOnDisk)
	progressDone := showProgress(packetHandler.Subscribe())

	session, err := packetHandler.ListenToPackets(ctx)
	<-progressDone

	if session != nil {
		logger.Infof("[%s] %s", session.ID, session.Stats)
	}

	switch {
	case err == nil:
		return
	case errors.Is(err, context.Canceled) && session != nil && session.IsComplete():
		return // Interrupted while lingering, the file is complete
	case errors.Is(err, context.Canceled):
		logger.Warnf("Interrupted before the transfer completed")
		udpSocket.Close()
		os.Exit(1)
	default:
		udpSocket.Close()
		logger.Errorf("Transfer failed: %v", err)
	}
}

// parseArgs expects exactly one argument, the UDP port to listen on.
func parseArgs(args []string) (int, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("expected 1 argument, got %d", len(args)-1)
	}

	port, err := strconv.Atoi(args[1])
	if err != nil || port < 0 || port > 65535 {
		return 0, fmt.Errorf("invalid port number: %s", args[1])
	}

	return port, nil
}

// showProgress renders received bytes on stderr until events is closed.
// Nothing is drawn when stderr is not a terminal. The returned channel is closed when done.
func showProgress(events <-chan handler.Event) <-chan struct{} {
	done := make(chan struct{})

	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(term.IsTerminal(int(os.Stderr.Fd()))),
		progressbar.OptionSetDescription("waiting for sender"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	go func() {
		defer close(done)
		defer bar.Finish()

		for event := range events {
			switch event.Type {
			case handler.EventPathAccepted:
				bar.Describe("receiving " + event.Path)
			case handler.EventChunkWritten:
				_ = bar.Add(event.Bytes)
			case handler.EventTransferComplete:
				bar.Describe("received " + event.Path)
			}
		}
	}()

	return done
}
