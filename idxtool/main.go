package main

import (
	"fmt"
	"io"
	"os"
)

import (
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/idxstore/errors"
	"github.com/timtadh/idxstore/fsys"
)

var ErrorCodes map[string]int = map[string]int{
	"usage":   0,
	"error":   1,
	"opts":    3,
	"badint":  5,
	"badfile": 7,
	"config":  8,
}

var UsageMessage string = "idxtool --help"
var ExtendedMessage string = `
idxtool -- encode, decode and store index relationship records

Global Options
  -h, --help                view this message
  -c, --config=<path>       YAML backend config
  --color=<when>            auto (default), always or never
  --commands                list the commands

encode
  $ idxtool encode [--bidi] --src=<ints> [--dst=<ints>]

  Options
    --bidi                  write a bidirectional record
    --src=<ints>            comma separated source locations
    --dst=<ints>            comma separated destination locations

decode
  $ idxtool decode <hex>

append
  $ idxtool append [--bidi] --src=<ints> [--dst=<ints>] <store>

dump
  $ idxtool dump <store>

Stores are named by prefix: memFS:<name>, nio:<path>, nioMapped:<path>
`

type command func(out io.Writer, reg *fsys.Registry, args []string) error

var commands = map[string]command{
	"encode": Encode,
	"decode": Decode,
	"append": Append,
	"dump":   Dump,
}

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

func AssertFile(fname string) string {
	fi, err := os.Stat(fname)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["badfile"])
	} else if fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was a directory, %s\n", fname)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

func main() {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hc:",
		[]string{
			"help", "config=", "commands", "color=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}

	cfg := fsys.DefaultConfig()
	colors := "auto"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-c", "--config":
			cfg, err = fsys.LoadConfig(AssertFile(oa.Arg()))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				Usage(ErrorCodes["config"])
			}
		case "--color":
			colors = oa.Arg()
		case "--commands":
			fmt.Fprintf(os.Stderr, "Commands\n")
			for name := range commands {
				fmt.Fprintf(os.Stderr, "  %v\n", name)
			}
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}

	if err := setColor(colors, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}

	if len(args) <= 0 {
		fmt.Fprintln(os.Stderr, "Must supply a command, try --help")
		Usage(ErrorCodes["opts"])
	}

	cmd, has := commands[args[0]]
	if !has {
		fmt.Fprintf(os.Stderr, "Command '%v' not supported. Try --commands.\n", args[0])
		Usage(ErrorCodes["opts"])
	}

	reg, err := fsys.NewRegistry(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["config"])
	}

	if err := cmd(os.Stdout, reg, args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, errors.Message(err))
		if _, is := err.(*usageError); is {
			Usage(ErrorCodes["opts"])
		}
		os.Exit(ErrorCodes["error"])
	}
}
