package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/grimdork/climate/arg"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/Urethramancer/tigercat/assembler"
	"github.com/Urethramancer/tigercat/isa"
)

const (
	stdinName     = "-"
	defaultOutput = "out.bin"
	outputExt     = ".bin"
)

var colour bool

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	colour = term.IsTerminal(int(os.Stderr.Fd()))
}

// style wraps s in an ANSI attribute when stderr is a terminal.
func style(attr, s string) string {
	if !colour {
		return s
	}
	return "\033[" + attr + "m" + s + "\033[0m"
}

// options declares the command line.
func options() (*arg.Options, error) {
	opt := arg.New("tcasm")
	opt.SetDefaultHelp(true)
	err := errors.Join(
		opt.SetOption(arg.GroupDefault, "o", "output", "Output file. Defaults to the input name with a .bin extension.", "", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "l", "lookup", "XML register and condition table replacing the built-in one.", "", false, arg.VarString, nil),
		opt.SetOption(arg.GroupDefault, "s", "symbols", "Print the label table after assembling.", false, false, arg.VarBool, nil),
		opt.SetOption(arg.GroupDefault, "n", "no-halt", "Do not append the halt word.", false, false, arg.VarBool, nil),
		opt.SetOption(arg.GroupDefault, "d", "dump", "Dump the label table and program layout to stderr.", false, false, arg.VarBool, nil),
		opt.SetPositional("INPUT", "Assembly source, or - for standard input.", "", false, arg.VarString),
	)
	if err != nil {
		return nil, err
	}
	return opt, nil
}

// interactive reports whether f is a terminal rather than a pipe or file.
// A file that cannot be inspected counts as not interactive.
func interactive(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

func tcasm() int {
	opt, err := options()
	if err != nil {
		log.Println(err)
		return 1
	}

	// With no arguments at all the source may still be piped in.
	err = opt.Parse(os.Args[1:])
	if err != nil && !errors.Is(err, arg.ErrNoArgs) {
		log.Println(err)
		return 1
	}

	input := opt.GetPosString("INPUT")
	output := opt.GetString("output")

	var src []byte
	if input == "" || input == stdinName {
		if input == "" && interactive(os.Stdin) {
			opt.PrintHelp()
			return 1
		}
		log.SetPrefix(style("1", "<stdin>:"))
		src, err = io.ReadAll(os.Stdin)
		if output == "" {
			output = defaultOutput
		}
	} else {
		name := filepath.Base(input)
		log.SetPrefix(style("1", name+":"))
		src, err = os.ReadFile(input)
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + outputExt
		}
	}
	if err != nil {
		log.Println(err)
		return 1
	}

	var lookup *isa.Lookup
	if path := opt.GetString("lookup"); path != "" {
		lookup, err = isa.LoadLookupFile(path)
		if err != nil {
			log.Println(err)
			return 1
		}
	}

	asm := assembler.New(lookup)
	prog, err := asm.Assemble(string(src))
	if err != nil {
		report(err)
		return 1
	}

	for _, w := range prog.Warnings {
		log.Printf("%d: %s %s", w.Line, style("33", "warning:"), w.Message)
	}

	if opt.GetBool("dump") {
		pp.Fprintf(os.Stderr, "labels (%d): %v\n", prog.Labels.Len(), prog.Labels.Labels())
		pp.Fprintf(os.Stderr, "code end: %#x, image bytes: %d\n", prog.End, len(prog.Code))
	}

	if err := os.WriteFile(output, prog.Image(!opt.GetBool("no-halt")), 0666); err != nil {
		log.Println("Error writing output file")
		log.Println(err)
		return 1
	}

	if opt.GetBool("symbols") {
		for _, l := range prog.Labels.Labels() {
			fmt.Printf("%s: 0x%X\n", l.Name, l.Value)
		}
	}
	return 0
}

// report prints every diagnostic with the offending source line.
func report(err error) {
	var list assembler.ErrorList
	if !errors.As(err, &list) {
		log.Println(err)
		return
	}

	for _, e := range list {
		log.Printf(
			"%s %v\n\t%s",
			style("1", fmt.Sprintf("%d:", e.Line)),
			e.Err,
			style("31", strings.TrimSpace(e.Text)),
		)
	}
	log.Printf("%d error(s), no output written", len(list))
}

func main() {
	os.Exit(tcasm())
}
