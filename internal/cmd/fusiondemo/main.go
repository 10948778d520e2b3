// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// fusiondemo merges two numbered lists into one and prints the updates that a list view would
// receive while providers and items are added and removed.
//
// Every argument is an action that is applied in order:
//
//	add-provider     registers the second list after the first one
//	remove-provider  deregisters the second list
//	add-item         appends an item to the first list
//	remove-item      removes the last item of the first list
//	list             prints the merged list
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"znkr.io/fusion"
	"znkr.io/fusion/internal/listmodel"
)

type config struct {
	items   int
	tagBits int
	minimal bool
	noMoves bool
	color   string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:   "fusiondemo [action...]",
		Short: "Replay provider and item changes on a merged list",
		Long: `fusiondemo merges two numbered lists into one and prints the updates that a list
view would receive while providers and items are added and removed.

Actions: add-provider, remove-provider, add-item, remove-item, list`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch cfg.color {
			case "on":
				color.NoColor = false
			case "off":
				color.NoColor = true
			case "auto":
			default:
				return fmt.Errorf("invalid --color value %q, want auto, on, or off", cfg.color)
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), &cfg, args)
		},
	}
	cmd.Flags().IntVar(&cfg.items, "items", 10, "number of items in each list")
	cmd.Flags().IntVar(&cfg.tagBits, "tag-bits", 16, "number of high bits of an item kind reserved for tags")
	cmd.Flags().BoolVar(&cfg.minimal, "minimal", false, "compute minimal diffs irrespective of the cost")
	cmd.Flags().BoolVar(&cfg.noMoves, "no-moves", false, "report moves as removals and insertions")
	cmd.Flags().StringVar(&cfg.color, "color", "auto", "colorize output (auto|on|off)")
	cmd.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "log registry activity to stderr")
	return cmd
}

var (
	opColor = map[fusion.Op]*color.Color{
		fusion.Insert: color.New(color.FgGreen),
		fusion.Remove: color.New(color.FgRed),
		fusion.Move:   color.New(color.FgYellow),
		fusion.Change: color.New(color.FgCyan),
	}
	actionColor = color.New(color.Bold)
)

// demo holds the state of a replay.
type demo struct {
	out    io.Writer
	r      *fusion.Registry[*view]
	model  *listmodel.Model[string]
	first  *counter
	second *counter
}

func run(out, errOut io.Writer, cfg *config, actions []string) error {
	if cfg.items < 0 {
		return fmt.Errorf("invalid --items value %d", cfg.items)
	}
	if cfg.tagBits < 1 || cfg.tagBits > 31 {
		return fmt.Errorf("invalid --tag-bits value %d, want a value in [1, 31]", cfg.tagBits)
	}

	opts := []fusion.Option{fusion.TagBits(cfg.tagBits), fusion.DetectMoves(!cfg.noMoves)}
	if cfg.minimal {
		opts = append(opts, fusion.Minimal())
	}
	if cfg.verbose {
		opts = append(opts, fusion.Logger(slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	d := &demo{
		out:    out,
		model:  listmodel.New[string](),
		first:  newCounter("first", cfg.items, 3),
		second: newCounter("second", cfg.items, 2),
	}
	d.r = fusion.New[*view](fusion.SinkFunc(d.apply), opts...)

	actionColor.Fprintln(out, "append first")
	if err := d.r.Append(d.first); err != nil {
		return err
	}
	for _, a := range actions {
		actionColor.Fprintln(out, a)
		if err := d.do(a); err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
	}
	return nil
}

func (d *demo) do(action string) error {
	switch action {
	case "add-provider":
		if d.r.Len() > 1 {
			fmt.Fprintln(d.out, "  second list is already registered")
			return nil
		}
		return d.r.Append(d.second)
	case "remove-provider":
		if !d.r.Deregister(d.second) {
			fmt.Fprintln(d.out, "  second list isn't registered")
		}
		return nil
	case "add-item":
		return d.first.add()
	case "remove-item":
		return d.first.remove()
	case "list":
		return d.list()
	default:
		return fmt.Errorf("unknown action")
	}
}

// apply is the sink of the registry.
func (d *demo) apply(updates []fusion.Update) {
	for _, u := range updates {
		opColor[u.Op].Fprintf(d.out, "  %v\n", u)
	}
	d.model.Apply(updates)
}

// list binds all rows that changed since the last call and prints the merged list.
func (d *demo) list() error {
	var err error
	d.model.Bind(func(pos int) string {
		if err != nil {
			return ""
		}
		var k fusion.Kind
		if k, err = d.r.ItemKind(pos); err != nil {
			return ""
		}
		var v *view
		if v, err = d.r.CreateView(k); err != nil {
			return ""
		}
		if err = d.r.BindView(v, pos); err != nil {
			return ""
		}
		return v.String()
	})
	if err != nil {
		return err
	}
	for i, row := range d.model.Values() {
		fmt.Fprintf(d.out, "  %2d %s\n", i, row)
	}
	return nil
}
