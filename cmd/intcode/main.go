// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/translate"
)

func main() {
	var compile string
	var listing string
	var config string
	var input string
	var output string
	var ascii bool
	var disasm bool
	var save string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&listing, "p", "", "Program listing to run")
	flag.StringVar(&config, "f", "", ".toml run configuration")
	flag.StringVar(&input, "i", "-", "Input")
	flag.StringVar(&output, "o", "-", "Output")
	flag.BoolVar(&ascii, "a", false, "ASCII input and output")
	flag.BoolVar(&disasm, "d", false, "Disassemble program, do not execute")
	flag.StringVar(&save, "s", "", "Save program listing to file, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := &emulator.Config{}
	if len(config) != 0 {
		var err error
		cfg, err = emulator.LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	cfg.Verbose = cfg.Verbose || verbose
	cfg.Ascii = cfg.Ascii || ascii

	var code []int64
	var prog *cpu.Program
	var err error

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: cfg.Verbose}
		for key, value := range emulator.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		code = prog.Listing()
	case len(listing) != 0:
		code, prog, err = emulator.LoadProgram(listing, cfg.Verbose)
		if err != nil {
			log.Fatalf("%v: %v", listing, err)
		}
	default:
		code, prog, err = cfg.Load()
		if err != nil {
			if len(config) == 0 {
				config = os.Args[0]
			}
			log.Fatalf("%v: %v", config, err)
		}
	}

	if len(save) != 0 {
		err = os.WriteFile(save, []byte(cpu.FormatListing(code)+"\n"), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if disasm {
		for ip, text := range cpu.Disassemble(code) {
			fmt.Fprintf(ouf, "%04d: %v\n", ip, text)
		}
		return
	}

	if cfg.IsNetwork() {
		runNetwork(cfg, code, ouf)
		return
	}

	inf := os.Stdin
	if input != "-" {
		inf, err = os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
	}

	var host io.Channel
	tape := &io.Tape{Input: inf, Output: ouf}
	if cfg.Ascii {
		host = &io.Ascii{Input: inf, Output: ouf}
	} else {
		host = tape
	}

	emu := cfg.Build(code, host)
	emu.Program = prog
	emu.Output = host

	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			if tape.Err() != nil {
				log.Fatalf("%v: %v", input, tape.Err())
			}
			log.Fatal(err)
		}
	}

	if cfg.Verbose {
		translate.Fprintf(os.Stderr, "%d ticks\n", emu.Ticks())
	}
}

// runNetwork runs, or searches, the configured amplifier network.
func runNetwork(cfg *emulator.Config, code []int64, ouf *os.File) {
	if !cfg.Network.Search {
		result, err := cfg.BuildNetwork(code).Run(cfg.Network.Signal)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(ouf, "%d\n", result)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, order, err := emulator.MaxSignal(ctx, code, cfg.Network.Phases, cfg.Network.Feedback, cfg.Network.Signal)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Verbose {
		phases := make([]string, len(order))
		for n, phase := range order {
			phases[n] = fmt.Sprintf("%d", phase)
		}
		translate.Fprintf(os.Stderr, "phases %v\n", strings.Join(phases, ","))
	}

	fmt.Fprintf(ouf, "%d\n", best)
}
