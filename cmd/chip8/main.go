// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Michael-Bianconi/chip8/cpu"
	"github.com/Michael-Bianconi/chip8/emulator"
	"github.com/Michael-Bianconi/chip8/monitor"
	"github.com/Michael-Bianconi/chip8/translate"
)

var errDefineFlag = errors.New("expected NAME=VALUE")

func main() {
	var compile string
	var binary string
	var output string
	var listing bool
	var steps int
	var interactive bool
	var verbose bool
	var lang string
	defines := map[string]string{}

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&binary, "b", "", ".bin file to load")
	flag.StringVar(&output, "o", "", "Write the program binary to this file")
	flag.BoolVar(&listing, "l", false, "Print a disassembly listing")
	flag.IntVar(&steps, "n", 0, "Run this many instructions, then dump the state")
	flag.BoolVar(&interactive, "m", false, "Interactive monitor")
	flag.Func("D", "Predefine NAME=VALUE for the assembler", func(text string) error {
		name, value, ok := strings.Cut(text, "=")
		if !ok || len(name) == 0 {
			return errDefineFlag
		}
		defines[name] = value
		return nil
	})
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "L", "", "Message locale, overriding the environment")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for name, value := range emu.Defines() {
			asm.Predefine(name, value)
		}
		for name, value := range defines {
			asm.Predefine(name, value)
		}

		prog, err := asm.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		err = emu.Load(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Or load a binary image.
	if len(binary) != 0 {
		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()

		err = emu.Rom.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}

		err = emu.Reset()
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	}

	if len(output) != 0 {
		err := os.WriteFile(output, emu.Rom.Data, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if listing {
		for _, item := range emu.Listing() {
			fmt.Printf("%03X: %04X  %v\n", item.Address, uint16(item.Code), item.Text)
		}
	}

	if steps > 0 {
		_, err := emu.Run(steps)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(emu.Cpu.String())
		fmt.Print(emu.Cpu.Display.String())
	}

	if interactive {
		err := console(monitor.NewMonitor(emu))
		if err != nil {
			log.Fatal(err)
		}
	}
}
