/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command dispatchctl inspects the built-in conversion graph and runs
// conversions and resolutions from the command line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"dirpx.dev/dispatch"
	"dirpx.dev/dispatch/apis"
	"dirpx.dev/dispatch/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "dispatchctl:", err)
		return 1
	}
	return 0
}

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgPath string
	verbose bool
	ctx     *dispatch.Context
	p       printer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{p: printer{w: stdout, color: isTerminal(stdout)}}

	root := &cobra.Command{
		Use:           "dispatchctl",
		Short:         "Inspect conversions and resolve members by compatible signature",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "path FROM TO",
			Short: "Print the shortest conversion chain between two types",
			Args:  cobra.ExactArgs(2),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.path(args[0], args[1]) },
		},
		&cobra.Command{
			Use:   "reach TYPE",
			Short: "List the types reachable from TYPE",
			Args:  cobra.ExactArgs(1),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.reach(args[0]) },
		},
		&cobra.Command{
			Use:   "convert VALUE TYPE",
			Short: "Convert textual VALUE to TYPE",
			Args:  cobra.ExactArgs(2),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.convert(args[0], args[1]) },
		},
		&cobra.Command{
			Use:   "resolve",
			Short: "Resolve Foo(*float64, Fruit, rune) for (float64, Pear, string)",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return a.resolve() },
		},
	)
	return root
}

// init loads the configuration and builds the context.
func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	a.ctx, err = dispatch.New(dispatch.WithConfig(cfg), dispatch.WithLogger(logger))
	return err
}

func (a *app) path(fromName, toName string) error {
	from, err := lookupType(fromName)
	if err != nil {
		return err
	}
	to, err := lookupType(toName)
	if err != nil {
		return err
	}
	path, err := a.ctx.Graph().ShortestPath(from, to)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		a.p.linef("%s (identity)", a.p.bold(from.String()))
		return nil
	}
	hops := []string{a.p.bold(from.String())}
	for _, e := range path {
		hops = append(hops, a.p.bold(e.To.String()))
	}
	a.p.linef("%s  [%s step(s)]", strings.Join(hops, " -> "), humanize.Comma(int64(len(path))))
	return nil
}

func (a *app) reach(name string) error {
	t, err := lookupType(name)
	if err != nil {
		return err
	}
	reach := a.ctx.Graph().ReachableFrom(t)
	for _, r := range reach {
		a.p.linef("  %s", r)
	}
	a.p.linef("%s type(s) reachable from %s, %s edge(s) in graph",
		humanize.Comma(int64(len(reach))), a.p.bold(t.String()), humanize.Comma(int64(len(a.ctx.Graph().Edges()))))
	return nil
}

func (a *app) convert(value, typeName string) error {
	t, err := lookupType(typeName)
	if err != nil {
		return err
	}
	out, err := a.ctx.Convert(value, t)
	if err != nil {
		return err
	}
	a.p.linef("%v %s", out, a.p.bold(reflect.TypeOf(out).String()))
	return nil
}

func (a *app) resolve() error {
	m, err := a.ctx.ResolveMatch(reflect.TypeFor[Basket](), "Foo", apis.SignatureOf(50.0, Pear{}, "g"), a.ctx.Config().Relax)
	if err != nil {
		return err
	}
	out, err := a.ctx.InvokeCompatible(Basket{}, nil, "Foo", 50.0, Pear{Fruit{Name: "pear"}}, "g")
	if err != nil {
		return err
	}
	a.p.linef("%s %v.%s%v", m.Callable.Kind(), m.Callable.Owner(), m.Callable.Name(), m.Callable.Signature())
	a.p.linef("matched %s", a.p.bold(m.Signature.String()))
	a.p.linef("result  %v", out)
	return nil
}

// printer writes lines, highlighting type names on terminals.
type printer struct {
	w     io.Writer
	color bool
}

func (p printer) linef(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p printer) bold(s string) string {
	if !p.color {
		return s
	}
	return "\x1b[1m" + s + "\x1b[0m"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
