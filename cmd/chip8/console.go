package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Michael-Bianconi/chip8/monitor"
)

const prompt = "chip8> "

// console reads monitor commands until QUIT or end of input. A terminal
// gets line editing; anything else is read a line at a time.
func console(mon *monitor.Monitor) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return script(mon, os.Stdin, os.Stdout)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	tty := term.NewTerminal(screen, prompt)

	for {
		var line string
		line, err = tty.ReadLine()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}
		if quit(line) {
			return
		}
		for _, text := range mon.Interpret(line) {
			fmt.Fprintln(tty, text)
		}
	}
}

// script runs monitor commands from a non-interactive reader.
func script(mon *monitor.Monitor, input io.Reader, output io.Writer) (err error) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		if quit(scanner.Text()) {
			break
		}
		for _, text := range mon.Interpret(scanner.Text()) {
			fmt.Fprintln(output, text)
		}
	}

	err = scanner.Err()
	return
}

func quit(line string) bool {
	cmd := strings.ToUpper(strings.TrimSpace(line))
	return cmd == "QUIT" || cmd == "EXIT"
}
