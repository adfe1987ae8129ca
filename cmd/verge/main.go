package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	verge "github.com/Koefte/Verge"
)

func main() {
	log.SetFlags(0)
	var (
		inname   string
		nl, echo bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	var p []*verge.Expr
	var opts []verge.ParseOption
	if nl {
		opts = append(opts, verge.StopOn('\n'))
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := verge.Parse(in, opts...)
			if err != nil {
				log.Fatal(err)
			}
			p = append(p, a)
		}
	}

	for _, a := range p {
		if echo {
			fmt.Printf("%v : ", a)
		}
		f, err := verge.Translate(a)
		if err != nil {
			fmt.Println(err)
			continue
		}
		r, err := f.Limit()
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(r)
	}
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
