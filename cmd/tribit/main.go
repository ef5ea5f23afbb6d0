// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/tribit/cpu"
	"github.com/ezrec/tribit/emulator"
	"github.com/ezrec/tribit/translate"
)

// defines collects repeated -D NAME=VALUE flags.
type defines map[string]string

func (d defines) String() string {
	var strs []string
	for name, value := range d {
		strs = append(strs, name+"="+value)
	}
	return strings.Join(strs, ",")
}

func (d defines) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("%q is not NAME=VALUE", text)
	}
	d[name] = value
	return nil
}

func main() {
	var input string
	var quine bool
	var disassemble bool
	var a string
	var isolate bool
	var ticks int
	var lang string
	var verbose bool

	predefine := defines{}

	flag.StringVar(&input, "i", "-", "Listing input")
	flag.BoolVar(&quine, "q", false, "Search for the smallest A that makes the program output itself")
	flag.BoolVar(&disassemble, "d", false, "Disassemble the program, do not execute")
	flag.StringVar(&a, "a", "", "Override register A (integer or $(expression))")
	flag.Var(predefine, "D", "Predefine NAME=VALUE for listing expressions (repeatable)")
	flag.BoolVar(&isolate, "isolate", false, "Restore registers B and C before every search trial")
	flag.IntVar(&ticks, "t", cpu.TICK_LIMIT, "Tick limit per run, 0 for unlimited")
	flag.StringVar(&lang, "lang", "", "Message language (default from the environment)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	var inf io.Reader = os.Stdin
	if input != "-" {
		file, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer file.Close()
		inf = file
	}

	ld := &cpu.Loader{Verbose: verbose}
	for name, value := range predefine {
		ld.Predefine(name, value)
	}

	listing, err := ld.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if len(a) != 0 {
		listing.Register[cpu.REG_A], err = ld.Evaluate(a)
		if err != nil {
			log.Fatalf("-a: %v", err)
		}
	}

	emu := emulator.NewEmulator(listing)
	emu.Verbose = verbose
	emu.Isolate = isolate
	emu.Cpu.TickLimit = ticks

	switch {
	case disassemble:
		lines, err := emu.Disassemble()
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	case quine:
		value, ok, err := emu.Quine()
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		if !ok {
			fmt.Println("no solution")
			os.Exit(1)
		}
		fmt.Println(value)
	default:
		output, err := emu.Run()
		if err != nil {
			if verbose {
				log.Print(emu.Cpu.String())
			}
			log.Fatalf("%v: %v", input, err)
		}
		fmt.Println(output)
	}
}
