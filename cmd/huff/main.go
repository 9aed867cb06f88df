// Command huff compresses and decompresses files with static Huffman coding.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/huff"
	"github.com/op/go-logging"
)

const progName = "huff"
const usageMessageRaw = `
Usage: huff [OPTIONS] SUBCOMMAND...

Subcommands:
  compress IN OUT
	Compress the file IN and write the container to OUT.

  decompress IN OUT
	Decompress the container or frame in IN and write the content to OUT.

  table IN
	Print the code table that compress would use for IN.

Options:
  -frame     wrap the container in a frame
  -checksum  add a content checksum to the frame (implies -frame)
  -d, -debug enable debug logging
`

var log = logging.MustGetLogger("huff/cmd")

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

var ourFlags *flag.FlagSet

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var argI int = 0

func nextArg(expected string) string {
	if !(argI < ourFlags.NArg()) {
		usageErrorf("not enough arguments; expected %s", expected)
	}
	arg := ourFlags.Arg(argI)
	argI++
	return arg
}

func endOfArgs() {
	if argI < ourFlags.NArg() {
		usageErrorf("too many arguments at %d (\"%s\")", argI, ourFlags.Arg(argI))
	}
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatter := logging.MustStringFormatter("%{level:8s} %{module:-12s} | %{message}")
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

type options struct {
	frame    bool
	checksum bool
}

// writeFile creates out and passes it to write. If anything fails, the
// partly written file is removed.
func writeFile(out string, write func(w io.Writer) error) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
	}
	return err
}

func compressFile(in, out string, opts options) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	counter := &countingWriter{}
	err = writeFile(out, func(f io.Writer) error {
		counter.w = f
		w := &huff.Writer{Dest: counter, Frame: opts.frame, Checksum: opts.checksum}
		if _, err := w.Write(src); err != nil {
			return err
		}
		return w.Close()
	})
	if err != nil {
		return err
	}

	ratio := 0.0
	if counter.n > 0 {
		ratio = float64(len(src)) / float64(counter.n)
	}
	log.Infof("compressed %s: %d -> %d bytes (ratio %.2f)", in, len(src), counter.n, ratio)
	return nil
}

func decompressFile(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := huff.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	var n int64
	err = writeFile(out, func(w io.Writer) error {
		var err error
		n, err = io.Copy(w, r)
		return err
	})
	if err != nil {
		return err
	}
	log.Infof("decompressed %s: %d bytes", in, n)
	return nil
}

func printTable(in string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	freq := huff.CountFrequencies(src)
	if freq.Len() == 0 {
		log.Infof("%s is empty", in)
		return nil
	}
	root, err := huff.BuildTree(freq)
	if err != nil {
		return err
	}
	table := huff.NewCodeTable(root)
	_, err = os.Stdout.Write(huff.TextEncoder{Counts: freq}.Encode(nil, table))
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func main() {
	startLogging()

	ourFlags = flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})

	// Usage strings are hardcoded above.

	var debugLogging bool
	var opts options
	ourFlags.BoolVar(&opts.frame, "frame", false, "")
	ourFlags.BoolVar(&opts.checksum, "checksum", false, "")
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	ourFlags.BoolVar(&debugLogging, "d", false, "")

	argErr := ourFlags.Parse(os.Args[1:])
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	var err error
	switch cmd := nextArg("SUBCOMMAND"); cmd {
	default:
		usageErrorf("unknown subcommand \"%s\"", cmd)
	case "compress":
		in, out := nextArg("IN"), nextArg("OUT")
		endOfArgs()
		err = compressFile(in, out, opts)
	case "decompress":
		in, out := nextArg("IN"), nextArg("OUT")
		endOfArgs()
		err = decompressFile(in, out)
	case "table":
		in := nextArg("IN")
		endOfArgs()
		err = printTable(in)
	}

	if err != nil {
		exitError(err)
	}
}
