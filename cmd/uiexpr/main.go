package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/lmorg/readline"

	uiexpr "github.com/Liam-BK/OTK.UI-sub001"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		interactive  bool
		given        [][2]string
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "script file with one statement per line")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.BoolVar(&interactive, "i", false, "interactive prompt after other input")
	flag.Parse()

	eng := uiexpr.New(uiexpr.WithOutput(os.Stdout))
	for _, d := range given {
		v, err := eng.EvaluateArithmetic(d[1])
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		if err := eng.DeclareVariable(d[0], v); err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
	}

	if inname != "" {
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		scan := bufio.NewScanner(f)
		for n := 1; scan.Scan(); n++ {
			line := strings.TrimSpace(scan.Text())
			if line == "" {
				continue
			}
			res, err := eng.Evaluate(line)
			if err != nil {
				log.Fatalf("%s:%d: %v", inname, n, err)
			}
			if !res.Void {
				fmt.Printf(verb+"\n", res.Value)
			}
		}
		if err := scan.Err(); err != nil {
			log.Fatal(err)
		}
		f.Close()
	}
	for _, arg := range flag.Args() {
		res, err := eng.Evaluate(arg)
		if err != nil {
			log.Fatal(err)
		}
		if !res.Void {
			fmt.Printf(verb+"\n", res.Value)
		}
	}

	if interactive || (inname == "" && flag.NArg() == 0) {
		repl(eng, verb)
	}
}

func repl(eng *uiexpr.Engine, verb string) {
	rline := readline.NewInstance()
	rline.SetPrompt("> ")
	for {
		line, err := rline.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		res, err := eng.Evaluate(line)
		if err != nil {
			color.Red("%v", err)
			continue
		}
		if res.Void {
			continue
		}
		color.Green(verb, res.Value)
	}
}
