package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/refhtml/refhtml/parser"
)

func main() {
	tokens := flag.Bool("tokens", false, "dump the token stream instead of the tree")
	tree := flag.Bool("tree", false, "dump the document tree (default)")
	showErrors := flag.Bool("errors", false, "print parse errors with positions to stderr")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if err := run(*tokens, *tree, *showErrors, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(tokens, tree, showErrors bool, path string) error {
	input, err := readInput(path)
	if err != nil {
		return err
	}

	var out string
	var parseErrs []parser.ParseError
	if tokens && !tree {
		var toks []parser.Token
		toks, parseErrs = parser.Tokenize(input)
		out = parser.DumpTokens(toks)
	} else {
		doc, errs := parser.Parse(input)
		parseErrs = errs
		out = parser.DumpTree(doc)
	}

	fmt.Println(out)
	if showErrors {
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
	}
	return nil
}

func readInput(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}
