// Command simulator runs a one-way PAR data link layer simulation: host
// A sends a payload file to host B over a shared medium, and reports
// whether host B received it unchanged.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	apexlog "github.com/apex/log"

	"github.com/bassosimone/pardll"
	"github.com/bassosimone/pardll/cmd/internal/logadapter"
	"github.com/bassosimone/pardll/cmd/internal/variant"
)

// maxPayloadSize bounds the payload file we are willing to load into
// memory in one go.
const maxPayloadSize = 1 << 31

var transcriptPrefix = flag.String("transcript", "", "write a bit-level transcript to <prefix>-a.log and <prefix>-b.log")

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-transcript <prefix>] <medium-type> <data-link-layer-type> <payload-file>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  medium-type: one of %v\n", variant.MediumNames)
	fmt.Fprintf(os.Stderr, "  data-link-layer-type: one of %v\n", variant.DataLinkLayerNames)
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
	}
	mediumType, dllType, payloadFile := args[0], args[1], args[2]

	logger := logadapter.Apex{}

	payload, err := loadPayload(payloadFile)
	if err != nil {
		apexlog.WithError(err).Fatal("simulator: failed to load payload")
	}

	topology := pardll.Must1(pardll.NewTopology(mediumType, dllType, logger))
	defer topology.Close()

	if *transcriptPrefix != "" {
		twA := pardll.NewTranscriptWriter(*transcriptPrefix+"-a.log", logger)
		defer twA.Close()
		twB := pardll.NewTranscriptWriter(*transcriptPrefix+"-b.log", logger)
		defer twB.Close()
		topology.HostA.SetTranscript(twA)
		topology.HostB.SetTranscript(twB)
	}

	topology.HostA.Send(payload)

	// Give the event loops time to exchange frames. A real deployment
	// would wait on a completion signal instead; the reference one-way
	// simulator relies on a fixed pause, which this CLI mirrors.
	time.Sleep(5 * time.Second)

	delivered := topology.HostB.Retrieve()
	if string(delivered) == string(payload) {
		fmt.Printf("simulator: OK, %d bytes delivered unchanged\n", len(delivered))
		return
	}
	fmt.Printf("simulator: MISMATCH, sent %d bytes, received %d bytes\n", len(payload), len(delivered))
	os.Exit(1)
}

// loadPayload reads filename entirely into memory, returning
// [pardll.ErrIOFailure] if the file cannot be read or is too large.
func loadPayload(filename string) ([]byte, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pardll.ErrIOFailure, err.Error())
	}
	if info.Size() > maxPayloadSize {
		return nil, fmt.Errorf("%w: payload file too large", pardll.ErrIOFailure)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pardll.ErrIOFailure, err.Error())
	}
	return data, nil
}
