package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

import (
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/idxstore/access"
	"github.com/timtadh/idxstore/consts"
	"github.com/timtadh/idxstore/fsys"
	"github.com/timtadh/idxstore/locinfo"
	"github.com/timtadh/idxstore/reclog"
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{fmt.Sprintf(format, args...)}
}

var coder = locinfo.NewCoder[int](locinfo.Ints{})

// setColor turns the header breakdown colors on or off. auto colors only
// a terminal.
func setColor(when string, w io.Writer) error {
	switch when {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		f, ok := w.(*os.File)
		color.NoColor = !ok || !isatty.IsTerminal(f.Fd())
	default:
		return usagef("--color expects auto, always or never, got '%v'", when)
	}
	return nil
}

func parseInts(str string) ([]int, error) {
	ints := make([]int, 0)
	if str == "" {
		return ints, nil
	}
	for _, part := range strings.Split(str, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, usagef("Error parsing '%v' expected an int", part)
		}
		ints = append(ints, i)
	}
	return ints, nil
}

// recordArgs reads the flags shared by encode and append.
func recordArgs(args []string) (*locinfo.Info[int], []string, error) {
	rest, optargs, err := getopt.GetOpt(
		args,
		"",
		[]string{
			"bidi", "src=", "dst=",
		},
	)
	if err != nil {
		return nil, nil, usagef("%v", err)
	}
	bidi := false
	src := make([]int, 0)
	dst := make([]int, 0)
	for _, oa := range optargs {
		switch oa.Opt() {
		case "--bidi":
			bidi = true
		case "--src":
			if src, err = parseInts(oa.Arg()); err != nil {
				return nil, nil, err
			}
		case "--dst":
			if dst, err = parseInts(oa.Arg()); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, usagef("Unknown flag '%v'", oa.Opt())
		}
	}
	if !bidi {
		if len(dst) > 0 {
			return nil, nil, usagef("--dst needs --bidi")
		}
		return locinfo.Reverse(src...), rest, nil
	}
	return locinfo.Bidirectional(src, dst), rest, nil
}

func Encode(out io.Writer, reg *fsys.Registry, args []string) error {
	info, rest, err := recordArgs(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return usagef("encode takes no arguments, got %v", rest)
	}
	record, err := coder.Encode(info)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hex.EncodeToString(record))
	describe(out, consts.Flag(record[0]))
	return nil
}

// describe prints what the bits of a record header say.
func describe(out io.Writer, header consts.Flag) {
	kind := color.New(color.FgCyan).SprintFunc()
	set := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()

	variant := "reverse"
	if header&consts.BIDIRECTIONAL != 0 {
		variant = "bidirectional"
	}
	fmt.Fprintf(out, "header 0x%02x %v\n", uint8(header), kind(variant))
	collection := func(name string, shift uint) {
		bits := (header >> shift) & consts.COLLECTION_MASK
		names := make([]string, 0, 3)
		if bits&consts.NARROW != 0 {
			names = append(names, set("narrow"))
		} else {
			names = append(names, "wide")
		}
		if bits&consts.EMPTY != 0 {
			names = append(names, set("empty"))
		}
		if bits&consts.SINGLETON != 0 {
			names = append(names, set("singleton"))
		}
		fmt.Fprintf(out, "  %-12v %v\n", name, strings.Join(names, " "))
	}
	collection("sources", consts.SOURCE_SHIFT)
	if header&consts.BIDIRECTIONAL != 0 {
		collection("destinations", consts.DESTINATION_SHIFT)
	}
	if header&consts.RESERVED != 0 {
		fmt.Fprintf(out, "  %v\n", bad("reserved bit 7 is set"))
	}
}

func Decode(out io.Writer, reg *fsys.Registry, args []string) error {
	if len(args) != 1 {
		return usagef("decode takes one hex record")
	}
	record, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	if err != nil {
		return usagef("Error parsing '%v' expected hex", args[0])
	}
	info, err := coder.Decode(record)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, info)
	return nil
}

func Append(out io.Writer, reg *fsys.Registry, args []string) (err error) {
	info, rest, err := recordArgs(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return usagef("append takes one store name")
	}
	log, err := openLog(reg, rest[0], access.ReadWrite)
	if err != nil {
		return err
	}
	defer func() {
		if e := log.Close(); err == nil {
			err = e
		}
	}()
	off, err := log.Append(info)
	if err != nil {
		return err
	}
	if err := log.Sync(); err != nil {
		return err
	}
	fmt.Fprintln(out, off)
	return nil
}

func Dump(out io.Writer, reg *fsys.Registry, args []string) error {
	if len(args) != 1 {
		return usagef("dump takes one store name")
	}
	log, err := openLog(reg, args[0], access.Read)
	if err != nil {
		return err
	}
	defer log.Close()
	return log.Do(func(off int64, info *locinfo.Info[int]) error {
		_, err := fmt.Fprintf(out, "%d\t%v\n", off, info)
		return err
	})
}

func openLog(reg *fsys.Registry, name string, mode access.Mode) (*reclog.Log[int], error) {
	fo, err := reg.Open(name, mode)
	if err != nil {
		return nil, err
	}
	log, err := reclog.Open(fo, coder)
	if err != nil {
		fo.Close()
		return nil, err
	}
	return log, nil
}
