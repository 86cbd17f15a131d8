package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

func main() {
	size := flag.Int("size", 19, "board size")
	flag.Parse()
	if *size < 2 || *size > 25 {
		fmt.Fprintln(os.Stderr, "board size must be between 2 and 25")
		os.Exit(1)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "igo> ",
		HistoryFile:     ".igo_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	s := newSession(*size, rl.Stdout())
	registry := newRegistry(s)

	fmt.Fprintf(rl.Stdout(), "igo %dx%d, наберите help\n", *size, *size)
	_ = showHandler(s, nil)

	for {
		rl.SetPrompt(fmt.Sprintf("igo [%s]> ", s.state.NextPlayer))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		if registry.execute(strings.TrimSpace(line)) {
			break
		}
	}
}
