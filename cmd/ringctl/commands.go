/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tonalring/ring/cell"
	"github.com/tonalring/ring/cmd/ringctl/storage"
	"github.com/tonalring/ring/cmd/ringctl/storage/bolt"
	"github.com/tonalring/ring/frames"
	"github.com/tonalring/ring/interpreters/goja"
	"github.com/tonalring/ring/layer"
	"github.com/tonalring/ring/music"
	"github.com/tonalring/ring/rotation"
	"github.com/tonalring/ring/tools"
	"github.com/tonalring/ring/util"
	"github.com/tonalring/ring/workspace"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// app is the state shared by ringctl's commands.
type app struct {
	cfg *Config

	// OpenStorage makes the snapshot store.  Tests replace it.
	OpenStorage func(ctx context.Context, cfg *Config) (storage.Storage, error)
}

func openBolt(ctx context.Context, cfg *Config) (storage.Storage, error) {
	if cfg.Store == "" {
		return nil, fmt.Errorf("no store configured")
	}
	s, err := bolt.NewStorage(cfg.Store)
	if err != nil {
		return nil, err
	}
	s.Debug = cfg.Debug
	if err = s.Open(ctx); err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Store, err)
	}
	return s, nil
}

// NewRootCommand builds the ringctl command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		OpenStorage: openBolt,
	})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ringctl",
		Short:         "Drive a tonal ring workspace",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			filename, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := LoadConfig(filename)
			if err != nil {
				return err
			}
			if err = cfg.ApplyFlags(cmd.Flags()); err != nil {
				return err
			}
			a.cfg = cfg
			util.Logging = cfg.Debug
			return nil
		},
	}
	AddFlags(root.PersistentFlags())

	root.AddCommand(
		a.demoCommand(),
		a.runCommand(),
		a.renderCommand(),
		a.animateCommand(),
		a.saveCommand(),
		a.loadCommand(),
		a.listCommand(),
		a.deleteCommand(),
	)
	return root
}

func (a *app) workspace(clock rotation.Clock) (*workspace.Workspace, error) {
	return workspace.New(a.cfg.Workspace(), clock)
}

// withStorage opens the store, calls f, and closes the store.
func (a *app) withStorage(ctx context.Context, f func(storage.Storage) error) error {
	s, err := a.OpenStorage(ctx, a.cfg)
	if err != nil {
		return err
	}
	err = f(s)
	if cerr := s.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

// restore loads the snapshot with the given key into w.
func (a *app) restore(ctx context.Context, w *workspace.Workspace, key string) (*storage.Record, error) {
	var r *storage.Record
	err := a.withStorage(ctx, func(s storage.Storage) error {
		var err error
		if r, err = s.Load(ctx, key); err != nil {
			return fmt.Errorf("load %s: %w", key, err)
		}
		if r.Snapshot == nil {
			return fmt.Errorf("record %s has no snapshot", key)
		}
		return w.Collection.Restore(r.Snapshot)
	})
	return r, err
}

func (a *app) save(ctx context.Context, w *workspace.Workspace, note string) (string, error) {
	var key string
	err := a.withStorage(ctx, func(s storage.Storage) error {
		var err error
		key, err = s.Save(ctx, &storage.Record{
			Saved:    time.Now().UTC(),
			Note:     note,
			Snapshot: w.Collection.Snapshot(),
		})
		return err
	})
	return key, err
}

func writeYAML(out io.Writer, x interface{}) error {
	bs, err := yaml.Marshal(x)
	if err != nil {
		return err
	}
	_, err = out.Write(bs)
	return err
}

func pitchNames(ps []music.Pitch) string {
	return strings.Join(music.SlashNotation(ps), " ")
}

// describe writes one line per structure, top first.
func describe(out io.Writer, w *workspace.Workspace) {
	ss := w.Collection.Structures.Get()
	for i := len(ss) - 1; 0 <= i; i-- {
		s := ss[i]
		var flags []string
		if s.Data().Active.Get() {
			flags = append(flags, "active")
		}
		if !s.Data().Visible.Get() {
			flags = append(flags, "hidden")
		}
		if t := s.Target(); t != nil {
			flags = append(flags, "anchored to "+t.ID.String())
		}
		fmt.Fprintf(out, "%s %s %v [%s] %s\n",
			s.ID, s.IntervalSet.Get(), s.IntervalSet.Get().Ordinals(),
			pitchNames(w.Pitches(s)), strings.Join(flags, ","))
	}
}

func (a *app) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Anchor the top structure, rotate it, and show each step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out   = cmd.OutOrStdout()
				clock = rotation.NewManualClock()
			)
			w, err := a.workspace(clock)
			if err != nil {
				return err
			}
			land := func() {
				clock.Advance(0)
				clock.RunFor(10*w.Collection.AnimationDuration+time.Second, 10*time.Millisecond)
			}

			fmt.Fprintln(out, "# initial")
			describe(out, w)

			top := w.Collection.Top.Get()
			if top == nil {
				return nil
			}
			top.Data().Active.Set(true)

			if w.UnifiedController.Get().Invoke(layer.SetAnchor) {
				fmt.Fprintln(out, "# anchored")
				describe(out, w)
			}

			for i := 0; i < 2; i++ {
				if err = w.Invoke(layer.RotateCw); err != nil {
					return err
				}
				land()
				fmt.Fprintf(out, "# rotated %d\n", i+1)
				describe(out, w)
			}

			if err = w.Invoke(layer.Play); err == nil {
				fmt.Fprintf(out, "# playing %s\n", pitchNames(w.Sound.Last))
				w.Invoke(layer.Stop)
			}

			fmt.Fprintln(out, "# snapshot")
			return writeYAML(out, w.Collection.Snapshot())
		},
	}
}

func (a *app) runCommand() *cobra.Command {
	var (
		timeout time.Duration
		key     string
		saveAs  string
	)
	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Run an ECMAScript (or YAML-wrapped) script against a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			src, err := tools.ReadScript(filename)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			clock := rotation.NewManualClock()
			w, err := a.workspace(clock)
			if err != nil {
				return err
			}
			if key != "" {
				if _, err = a.restore(ctx, w, key); err != nil {
					return err
				}
			}

			i := goja.NewInterpreter()
			i.LibraryProvider = goja.MakeFileLibraryProvider(filepath.Dir(filename))
			exe, err := i.Exec(ctx, w, clock, src, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}

			out := cmd.OutOrStdout()
			for _, line := range exe.Logged {
				fmt.Fprintln(out, line)
			}
			if exe.Result != nil {
				js, err := json.Marshal(exe.Result)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", js)
			}

			if saveAs != "" {
				k, err := a.save(ctx, w, saveAs)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "saved %s\n", k)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "script timeout")
	cmd.Flags().StringVar(&key, "from", "", "start from this stored snapshot")
	cmd.Flags().StringVar(&saveAs, "save", "", "save the resulting stack with this note")
	return cmd
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

func (a *app) renderCommand() *cobra.Command {
	var (
		format string
		output string
		key    string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the stack as dot, mermaid, html, svg, or png",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.workspace(rotation.NewManualClock())
			if err != nil {
				return err
			}
			if key != "" {
				if _, err = a.restore(cmd.Context(), w, key); err != nil {
					return err
				}
			}
			c := w.Collection

			if format == "png" {
				if output == "" {
					output = "stack"
				}
				filename, err := tools.PNG(c, strings.TrimSuffix(output, ".png"))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), filename)
				return nil
			}

			var out io.WriteCloser = nopCloser{cmd.OutOrStdout()}
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				out = f
			}

			switch format {
			case "dot":
				return tools.Dot(c, out)
			case "mermaid":
				return tools.Mermaid(c, out, nil)
			}

			switch format {
			case "html":
				err = tools.RenderStackPage(c, w.Pitches, out, title, nil)
			case "md", "markdown":
				tools.StackMarkdown(c, w.Pitches, out)
			case "svg":
				err = tools.SVG(c, out)
			default:
				err = fmt.Errorf("unknown format %q", format)
			}
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "dot, mermaid, html, md, svg, or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (png: basename)")
	cmd.Flags().StringVar(&key, "from", "", "render this stored snapshot")
	cmd.Flags().StringVar(&title, "title", "Stack", "html page title")
	return cmd
}

func (a *app) animateCommand() *cobra.Command {
	var (
		stops    int
		interval time.Duration
		keyboard bool
	)
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Rotate the active structure (or the keyboard) in real time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out  = cmd.OutOrStdout()
				loop = frames.NewLoop(interval)
			)
			loop.Debug = a.cfg.Debug

			w, err := a.workspace(loop)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second+10*time.Duration(a.cfg.AnimationMs)*time.Millisecond)
			defer cancel()

			loopErr := make(chan error, 1)
			go func() {
				loopErr <- loop.Run(ctx)
			}()
			for !loop.IsRunning() {
				select {
				case err := <-loopErr:
					return err
				case <-time.After(time.Millisecond):
				}
			}

			settled := make(chan error, 1)
			err = loop.Do(ctx, func() {
				var (
					c     *rotation.Completion
					angle cell.Cell[float64]
				)
				if keyboard {
					angle = w.Keyboard.TonalCenterRotation.Rotation
					c = w.Keyboard.ShiftWithAnimation(stops)
				} else {
					s := w.Collection.Active.Get()
					if s == nil {
						settled <- fmt.Errorf("no active structure")
						return
					}
					angle = s.Rotation.Rotation
					c = s.ShiftWithAnimation(stops)
				}
				unsubscribe := angle.Subscribe(func(r float64) {
					fmt.Fprintf(out, "%.3f\n", r)
				})
				c.OnSettle(func(err error) {
					unsubscribe()
					settled <- err
				})
			})
			if err != nil {
				return err
			}

			select {
			case err = <-settled:
			case <-ctx.Done():
				err = ctx.Err()
			}
			if err != nil {
				return err
			}

			return loop.Do(ctx, func() {
				if keyboard {
					fmt.Fprintf(out, "tonal center %s\n", music.NoteFromID(w.Keyboard.TonalCenter.Get()))
				}
				describe(out, w)
			})
		},
	}
	cmd.Flags().IntVarP(&stops, "stops", "n", 1, "how many stops to rotate (negative is counterclockwise)")
	cmd.Flags().DurationVar(&interval, "interval", frames.DefaultInterval, "frame interval")
	cmd.Flags().BoolVar(&keyboard, "keyboard", false, "rotate the keyboard instead")
	return cmd
}

func (a *app) saveCommand() *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the configured stack as a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.workspace(rotation.NewManualClock())
			if err != nil {
				return err
			}
			key, err := a.save(cmd.Context(), w, note)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "label for the snapshot")
	return cmd
}

func (a *app) loadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load KEY",
		Short: "Load a snapshot and describe it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.workspace(rotation.NewManualClock())
			if err != nil {
				return err
			}
			r, err := a.restore(cmd.Context(), w, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if r.Note != "" {
				fmt.Fprintf(out, "# %s\n", r.Note)
			}
			describe(out, w)
			return writeYAML(out, w.Collection.Snapshot())
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd.Context(), func(s storage.Storage) error {
				rs, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, r := range rs {
					n := 0
					if r.Snapshot != nil {
						n = len(r.Snapshot.Structures)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d %s\n",
						r.Key, r.Saved.Format(time.RFC3339), n, r.Note)
				}
				return nil
			})
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd.Context(), func(s storage.Storage) error {
				return s.Delete(cmd.Context(), args[0])
			})
		},
	}
}
