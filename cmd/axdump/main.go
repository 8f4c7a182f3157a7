// Package main provides axdump, a small inspector for serialized tensors.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/axon-ml/axon/backend/cpu"
	"github.com/axon-ml/axon/internal/serialization"
)

var (
	preview  = flag.Int("preview", 8, "Number of elements to print (0 to disable)")
	metaOnly = flag.Bool("meta", false, "Print metadata only, do not materialize the buffer")
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal().Msg("usage: axdump [flags] <file>")
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read file")
	}

	info, err := serialization.Inspect(data)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Not a serialized tensor")
	}
	log.Info().
		Str("mode", info.Mode).
		Str("dtype", info.DType.String()).
		Ints("shape", info.Shape).
		Int("offset", info.Offset).
		Int("buflen", info.BufLen).
		Msg("Tensor metadata")

	if *metaOnly {
		return
	}

	t, err := serialization.Decode(data, cpu.New())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode tensor")
	}

	n := *preview
	if n > t.Size() {
		n = t.Size()
	}
	for i := 0; i < n; i++ {
		fmt.Printf("[%d] %v\n", i, t.Buffer().At(t.Offset()+i))
	}
	if n < t.Size() {
		fmt.Printf("... %d more elements\n", t.Size()-n)
	}
}
