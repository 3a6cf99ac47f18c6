/* Copyright 2018-2026 Comcast Cable Communications Management, LLC
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

// Package goja lets ECMAScript drive a workspace.
//
// Scripts see a single object "_" with functions that read and change
// the workspace.  A script runs synchronously and may return an
// object, which becomes the Execution's Result.
package goja

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/tonalring/ring/intervals"
	"github.com/tonalring/ring/layer"
	"github.com/tonalring/ring/rotation"
	"github.com/tonalring/ring/stack"
	"github.com/tonalring/ring/util"
	"github.com/tonalring/ring/workspace"

	"github.com/dop251/goja"
	"github.com/google/uuid"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Exec if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// FrameStep is how far apart the frames that _.tick delivers are.
var FrameStep = 10 * time.Millisecond

// Interpreter runs scripts against a workspace using Goja, which is
// a Go implementation of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
type Interpreter struct {

	// Testing is used to expose or hide some runtime
	// capabilities.
	Testing bool

	// LibraryProvider resolves the names in a script's
	// "requires".  If nil, DefaultLibraryProvider is used.
	LibraryProvider func(ctx context.Context, i *Interpreter, libraryName string) (string, error)
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Execution is the outcome of running a script.
type Execution struct {
	// Result is what the script returned, if anything.
	Result map[string]interface{}

	// Logged holds what the script gave to _.log, as JSON.
	Logged []string
}

// ProvideLibrary resolves the library name into a library.
func (i *Interpreter) ProvideLibrary(ctx context.Context, name string) (string, error) {
	if i.LibraryProvider != nil {
		return i.LibraryProvider(ctx, i, name)
	}
	return DefaultLibraryProvider(ctx, i, name)
}

var DefaultLibraryProvider = MakeFileLibraryProvider(".")

// MakeFileLibraryProvider resolves names like "file://lib.js"
// relative to the given directory.
func MakeFileLibraryProvider(dir string) func(context.Context, *Interpreter, string) (string, error) {
	return func(ctx context.Context, i *Interpreter, name string) (string, error) {
		parts := strings.SplitN(name, "://", 2)
		if 2 != len(parts) {
			return "", fmt.Errorf("bad link '%s'", name)
		}
		switch parts[0] {
		case "file":
			if strings.Contains(parts[1], "..") {
				return "", fmt.Errorf("bad library path '%s'", parts[1])
			}
			bs, err := ioutil.ReadFile(dir + "/" + parts[1])
			if err != nil {
				return "", err
			}
			return string(bs), nil
		default:
			return "", fmt.Errorf("unknown protocol '%s'", parts[0])
		}
	}
}

func MakeMapLibraryProvider(srcs map[string]string) func(context.Context, *Interpreter, string) (string, error) {
	return func(ctx context.Context, i *Interpreter, name string) (string, error) {
		src, have := srcs[name]
		if !have {
			return "", fmt.Errorf("undefined library '%s'", name)
		}
		return src, nil
	}
}

func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

// parseSource looks into the given map to try to find "requires" and
// "code" properties.
func parseSource(vv map[string]interface{}) (code string, libs []string, err error) {
	x := vv["code"]
	if s, is := x.(string); is {
		code = s
	} else {
		err = errors.New("bad Goja code")
		return
	}

	switch vv := vv["requires"].(type) {
	case nil:
	case string:
		libs = []string{vv}
	case []string:
		libs = vv
	case []interface{}:
		libs = make([]string, 0, len(vv))
		for _, x := range vv {
			s, is := x.(string)
			if !is {
				err = errors.New("bad library")
				return
			}
			libs = append(libs, s)
		}
	default:
		err = fmt.Errorf("bad requires (%T)", vv)
	}

	return
}

// AsSource accepts a plain string or a map (as from YAML) with "code"
// and optional "requires".
func AsSource(src interface{}) (code string, libs []string, err error) {
	switch vv := src.(type) {
	case string:
		code = vv
		return
	case map[interface{}]interface{}:
		m := make(map[string]interface{})
		for k, v := range vv {
			str, ok := k.(string)
			if !ok {
				err = fmt.Errorf("bad src key (%T)", k)
				return
			}
			m[str] = v
		}
		return parseSource(m)
	case map[string]interface{}:
		return parseSource(vv)
	default:
		err = fmt.Errorf("bad Goja source (%T)", src)
		return
	}
}

// Compile prepends any required libraries and compiles the result.
func (i *Interpreter) Compile(ctx context.Context, src interface{}) (*goja.Program, error) {
	code, libs, err := AsSource(src)
	if err != nil {
		return nil, err
	}

	code = wrapSrc(code)

	var libsSrc string
	for _, lib := range libs {
		libSrc, err := i.ProvideLibrary(ctx, lib)
		if err != nil {
			return nil, err
		}
		libsSrc += libSrc + "\n"
	}

	code = libsSrc + code

	p, err := goja.Compile("", code, true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + code)
	}

	return p, nil
}

func protest(o *goja.Runtime, x interface{}) {
	panic(o.ToValue(x))
}

// Exec runs a script against a workspace.  If compiled is nil, src
// is compiled first.
//
// The following properties are available from the runtime at _:
//
//	add(binary): Add a structure on top.  Returns its id.
//	remove(id): Remove a structure.
//	toggle(ordinal): Toggle an interval on the structures being edited.
//	activate(id): Make a structure the active layer (0 for the keyboard).
//	check(id, bool): Check or uncheck a layer (0 for the keyboard).
//	mode(name): Set the editing mode ("single" or "multi").
//	slots(): List the slots that the unified controller has.
//	invoke(slot): Invoke a slot of the unified controller.
//	invokeOn(id, slot): Invoke a slot of one structure.
//	mergeDown(id): Merge a structure into the one below.
//	tick(ms): Advance the clock, delivering frames.
//	pitches(id): A structure's pitches in slash notation.
//	state(): A snapshot of the stack.
//	gensym(): A random string.
//	log(x): Record x.
//
// tick needs clock.  With a nil clock, calling tick throws.
//
// For testing only, sleep(ms) sleeps for the given number of
// milliseconds.  The Testing flag must be set to see sleep().
func (i *Interpreter) Exec(ctx context.Context, w *workspace.Workspace, clock *rotation.ManualClock, src interface{}, compiled *goja.Program) (*Execution, error) {
	exe := &Execution{}

	if compiled == nil {
		var err error
		if compiled, err = i.Compile(ctx, src); err != nil {
			return exe, err
		}
	}

	o := goja.New()

	if i.Testing {
		o.Set("sleep", func(ms int) {
			time.Sleep(time.Duration(ms) * time.Millisecond)
		})
	}

	structure := func(id int) *stack.Structure {
		s := w.Collection.Get(stack.ID(id))
		if s == nil {
			protest(o, fmt.Sprintf("no structure %d", id))
		}
		return s
	}

	layerOf := func(id int) layer.Layer {
		if id == 0 {
			return w.Keyboard
		}
		return structure(id)
	}

	slot := func(name string) layer.SlotName {
		n, err := layer.ParseSlotName(name)
		if err != nil {
			protest(o, err.Error())
		}
		return n
	}

	env := map[string]interface{}{
		"add": func(binary int) int {
			if binary&^intervals.ChromaticBinary != 0 {
				protest(o, fmt.Sprintf("%d isn't a 12-bit interval set", binary))
			}
			s, err := w.Collection.Add(binary, stack.NoID)
			if err != nil {
				protest(o, err.Error())
			}
			return int(s.ID)
		},
		"remove": func(id int) bool {
			return w.Collection.Remove(stack.ID(id))
		},
		"toggle": func(ordinal int) {
			w.ToggleInterval(ordinal)
		},
		"activate": func(id int) {
			layerOf(id).Data().Active.Set(true)
		},
		"check": func(id int, on bool) {
			layerOf(id).Data().Checked.Set(on)
		},
		"mode": func(name string) {
			m, err := workspace.ParseEditingMode(name)
			if err != nil {
				protest(o, err.Error())
			}
			w.EditingMode.Set(m)
		},
		"slots": func() []string {
			var acc []string
			for _, n := range w.UnifiedController.Get().Present() {
				acc = append(acc, n.String())
			}
			return acc
		},
		"invoke": func(name string) bool {
			return w.UnifiedController.Get().Invoke(slot(name))
		},
		"invokeOn": func(id int, name string) bool {
			return structure(id).Controller().Invoke(slot(name))
		},
		"mergeDown": func(id int) bool {
			op := structure(id).MergeDown.Get()
			if op == nil {
				return false
			}
			op()
			return true
		},
		"tick": func(ms int) int {
			if clock == nil {
				protest(o, "no clock")
			}
			var (
				n   = clock.Frame()
				end = clock.Now() + time.Duration(ms)*time.Millisecond
			)
			for clock.Now() < end {
				step := FrameStep
				if end-clock.Now() < step {
					step = end - clock.Now()
				}
				n += clock.Advance(step)
			}
			return n
		},
		"pitches": func(id int) []string {
			var acc []string
			for _, p := range w.Pitches(structure(id)) {
				acc = append(acc, p.SlashNotation())
			}
			return acc
		},
		"state": func() interface{} {
			x, err := canonicalize(w.Collection.Snapshot())
			if err != nil {
				protest(o, err.Error())
			}
			return x
		},
		"gensym": func() string {
			return uuid.NewString()
		},
	}

	env["log"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		js, err := json.Marshal(&x)
		if err != nil {
			util.Logf("goja.log (can't marshal: %s)", err)
			return x
		}
		exe.Logged = append(exe.Logged, string(js))
		util.Logf("goja.log %s", js)
		return x
	}

	o.Set("_", env)

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If this Exec method calls cancel() after RunProgram
		// returns, then we'll never see this
		// InterruptedMessage, which is actually the behavior
		// we want.  In this case, we weren't actually interrupted.
		o.Interrupt(InterruptedMessage)
	}()

	v, err := o.RunProgram(compiled)
	cancel()

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return nil, Interrupted
		}
		return nil, err
	}

	switch vv := v.Export().(type) {
	case map[string]interface{}:
		exe.Result = vv
	case nil:
	default:
		return nil, fmt.Errorf("%#v (%T) isn't an object", vv, vv)
	}

	return exe, nil
}

// canonicalize is an abomination
func canonicalize(x interface{}) (interface{}, error) {
	js, err := json.Marshal(&x)
	if err != nil {
		return nil, err
	}
	var y interface{}
	if err = json.Unmarshal(js, &y); err != nil {
		return nil, err
	}
	return y, nil
}
