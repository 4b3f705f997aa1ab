package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"slices"
	"time"

	"github.com/rawbytedev/borrow"
	"github.com/rawbytedev/borrow/pkg/bytebuf"
	"github.com/rawbytedev/borrow/pkg/compactwire"
	"github.com/sirupsen/logrus"
)

// Profiling driver: builds records in a BytesMut, frames them, decodes the
// frames and walks the chunks through views, then writes a heap profile.
func main() {
	iterations := flag.Int("n", 10000, "frames to encode and decode")
	config := flag.String("config", "", "compactwire options file (yaml)")
	profile := flag.String("memprofile", "mem.prof", "heap profile output, empty to skip")
	pprofAddr := flag.String("pprof", "", "serve net/http/pprof on this address and wait")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logrus.SetOutput(os.Stdout)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *pprofAddr != "" {
		go func() {
			logrus.Info(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	opts := compactwire.DefaultOptions()
	if *config != "" {
		data, err := os.ReadFile(*config)
		if err != nil {
			logrus.Fatalf("read config: %v", err)
		}
		if opts, err = compactwire.LoadOptions(data); err != nil {
			logrus.Fatalf("load config: %v", err)
		}
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = 16
	}

	runtime.MemProfileRate = 1
	start := time.Now()
	total, err := run(*iterations, opts)
	if err != nil {
		logrus.Fatalf("run: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"frames":      *iterations,
		"chunks":      total,
		"compression": opts.Compression,
		"elapsed":     time.Since(start),
	}).Info("done")

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			logrus.Fatal(err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logrus.Fatal(err)
		}
	}
	if *pprofAddr != "" {
		logrus.Infof("serving pprof on %s", *pprofAddr)
		select {}
	}
}

func run(n int, opts compactwire.Options) (int, error) {
	enc, err := compactwire.NewEncoder(opts)
	if err != nil {
		return 0, err
	}
	defer enc.Close()
	dec, err := compactwire.NewDecoder(opts)
	if err != nil {
		return 0, err
	}
	defer dec.Close()

	words := []string{"azerty", "hello", "world", "random"}
	ids := borrow.WithCapacity[uint64](len(words))
	chunks := 0
	for i := 0; i < n; i++ {
		m := bytebuf.WithCapacity(64)
		for j, w := range words {
			id := uint64(i*len(words) + j)
			if err := ids.Push(id); err != nil {
				return chunks, err
			}
			m.PutUvarint(id)
			m.PutStr(w)
			m.Put(0)
		}
		frame, err := enc.EncodeData(m.Freeze())
		if err != nil {
			return chunks, err
		}
		f, err := dec.DecodeData(frame)
		if err != nil {
			return chunks, err
		}
		for c := range f.Chunks() {
			chunks++
			logrus.Debugf("frame %d chunk %v", i, c)
		}
		if last := ids.Pop().Unwrap(); !slices.Contains(ids.Leak(), last-1) {
			logrus.Warnf("frame %d: id sequence broken at %d", i, last)
		}
		ids = borrow.WithCapacity[uint64](len(words))
	}
	return chunks, nil
}
