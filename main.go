// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/retrokit/mos65xx/cpu"
	"github.com/retrokit/mos65xx/monitor"
)

var (
	variant string
)

func init() {
	flag.StringVar(&variant, "cpu", "65C02", "CPU variant (6502, 6502A, 6502C or 65C02)")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: mos65xx [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	v, ok := cpu.ParseVariant(variant)
	if !ok {
		exitOnError(fmt.Errorf("unknown CPU variant '%s'", variant))
	}

	m := monitor.New(v)

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		m.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(m, c)

	// Run commands from standard input, interactively when attached to a
	// terminal.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	m.RunCommands(os.Stdin, os.Stdout, interactive)
}

func handleInterrupt(m *monitor.Monitor, c chan os.Signal) {
	for {
		<-c
		m.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
