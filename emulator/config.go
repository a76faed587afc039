package emulator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Config is a run configuration, loaded from TOML.
//
//	program = "amp.int"
//	inputs = [1, 2]
//
//	[network]
//	phases = [5, 6, 7, 8, 9]
//	feedback = true
//	search = true
type Config struct {
	Program string  `toml:"program"` // Listing, or assembly source if ending in ".asm".
	Inputs  []int64 `toml:"inputs"`  // Values fed before any other input.
	Ascii   bool    `toml:"ascii"`   // Run the program with ASCII I/O.
	Verbose bool    `toml:"verbose"`

	Network NetworkConfig `toml:"network"`

	// Dir is the directory relative paths are resolved from.
	Dir string `toml:"-"`
}

// NetworkConfig describes an amplifier network.
type NetworkConfig struct {
	Phases   []int64 `toml:"phases"`
	Signal   int64   `toml:"signal"`   // Initial signal to the first node.
	Feedback bool    `toml:"feedback"` // Route the last node back to the first.
	Search   bool    `toml:"search"`   // Try every phase ordering.
}

// ParseConfig parses a TOML configuration.
func ParseConfig(text string) (cfg *Config, err error) {
	cfg = &Config{}
	md, err := toml.Decode(text, cfg)
	if err != nil {
		cfg = nil
		return
	}

	for _, key := range md.Undecoded() {
		cfg = nil
		err = ErrConfigKey(key.String())
		return
	}

	return
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	cfg, err = ParseConfig(string(data))
	if err != nil {
		return
	}

	cfg.Dir = filepath.Dir(path)

	return
}

// IsNetwork returns true if the configuration describes a network.
func (cfg *Config) IsNetwork() bool {
	return len(cfg.Network.Phases) > 0
}

// Load the configured program.
func (cfg *Config) Load() (listing []int64, prog *cpu.Program, err error) {
	if len(cfg.Program) == 0 {
		err = ErrNoProgram
		return
	}

	path := cfg.Program
	if !filepath.IsAbs(path) && len(cfg.Dir) > 0 {
		path = filepath.Join(cfg.Dir, path)
	}

	return LoadProgram(path, cfg.Verbose)
}

// Build an emulator for the program. The configured inputs are received
// before any values from input.
func (cfg *Config) Build(listing []int64, input io.Channel) (emu *Emulator) {
	emu = NewEmulator(listing)
	emu.Verbose = cfg.Verbose

	seq := io.Sequence{&io.Rom{Data: cfg.Inputs}}
	if input != nil {
		seq = append(seq, input)
	}
	emu.Input = seq

	return
}

// BuildNetwork builds the configured network for the program.
func (cfg *Config) BuildNetwork(listing []int64) (nw *Network) {
	nw = NewNetwork(listing, cfg.Network.Phases, cfg.Network.Feedback)
	nw.Verbose = cfg.Verbose

	return
}

// LoadProgram reads a program file. Files ending in ".asm" are assembled,
// all others are parsed as comma separated listings.
func LoadProgram(path string, verbose bool) (listing []int64, prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	if strings.HasSuffix(path, ".asm") {
		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			return
		}
		listing = prog.Listing()
		return
	}

	listing, err = cpu.ParseListing(inf)

	return
}
