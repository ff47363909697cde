// Command rcitool answers RCI requests against a schema tree loaded
// from YAML.
//
// Usage:
//
//	rcitool -schema device.yaml [-descriptor] [-batch] [request.xml]
//
// With -descriptor it prints the descriptor document of the schema.
// Otherwise it reads one rci_request document from the named file, or
// from standard input, and prints the rci_reply. With -batch the input
// holds any number of requests, each followed by "]]>]]>", and each
// reply is followed by the same token.
//
// Leaves declared with a value hold it in memory, so requests within
// one run see each other's writes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/andaru/rci/descriptor"
	"github.com/andaru/rci/dispatch"
	"github.com/andaru/rci/loader"
	"github.com/andaru/rci/processor"
	"github.com/andaru/rci/schema"
	"github.com/andaru/rci/xmlutil"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type config struct {
	schema     string
	descriptor bool
	batch      bool
	input      string
}

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	var c config
	fs.StringVar(&c.schema, "schema", "", "YAML schema `file`")
	fs.BoolVar(&c.descriptor, "descriptor", false, "print the descriptor document and exit")
	fs.BoolVar(&c.batch, "batch", false, "read ]]>]]> delimited requests")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if c.schema == "" {
		return c, errors.New("-schema is required")
	}
	switch fs.NArg() {
	case 0:
	case 1:
		c.input = fs.Arg(0)
	default:
		return c, errors.New("at most one request file may be given")
	}
	return c, nil
}

func run(c config, stdin io.Reader, stdout io.Writer) error {
	root, err := loader.Load(c.schema)
	if err != nil {
		return err
	}
	if c.descriptor {
		_, err := fmt.Fprintln(stdout, descriptor.New(root).Document())
		return errors.WithStack(err)
	}

	in := stdin
	if c.input != "" {
		f, err := os.Open(c.input)
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		in = f
	}

	p := processor.New(root, processor.WithDispatcher(dispatch.New(dispatch.WithUnmatched(
		func(parent schema.Node, e xmlutil.Element) {
			glog.Warningf("no node for <%s> under %s", e.Tag(), parent.Name())
		}))))
	if c.batch {
		return p.Serve(in, stdout)
	}
	reply, err := p.Process(in)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, reply)
	return errors.WithStack(err)
}

func main() {
	c, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "rcitool: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}
	defer glog.Flush()
	if err := run(c, os.Stdin, os.Stdout); err != nil {
		glog.Errorf("rcitool: %v", err)
		fmt.Fprintf(os.Stderr, "rcitool: %v\n", err)
		glog.Flush()
		os.Exit(1)
	}
}
