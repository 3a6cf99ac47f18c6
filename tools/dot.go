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

package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tonalring/ring/stack"

	"gopkg.in/yaml.v2"
)

// structureLabel is what a node label shows.
type structureLabel struct {
	Ordinals []int  `yaml:"ordinals,flow"`
	Binary   int    `yaml:"binary"`
	Flags    string `yaml:"flags,omitempty"`
}

func flags(s *stack.Structure) string {
	d := s.Data()
	var acc []string
	if !d.Visible.Get() {
		acc = append(acc, "hidden")
	}
	if d.Checked.Get() {
		acc = append(acc, "checked")
	}
	if d.Playing.Get() {
		acc = append(acc, "playing")
	}
	return strings.Join(acc, " ")
}

// Dot makes a Graphviz dot file for the given stack, top first.
//
// Neighbours are joined by black edges, and each anchor is a dashed
// red edge from the anchored structure to its target.  The active
// structure is drawn in red.
func Dot(c *stack.Collection, w io.WriteCloser) error {

	ss := c.Structures.Get()

	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=TB,nodesep=0.3,ranksep=0.6]
  node [shape="record" style="rounded,filled"]
  edge [fontsize = "12"]
`)

	for i := len(ss) - 1; 0 <= i; i-- {
		s := ss[i]
		js, err := yaml.Marshal(structureLabel{
			Ordinals: s.IntervalSet.Get().Ordinals(),
			Binary:   s.IntervalSet.Get().Binary(),
			Flags:    flags(s),
		})
		if err != nil {
			js = []byte(err.Error())
		}
		label := fmt.Sprintf("s%d<BR/>", s.ID) +
			`<FONT POINT-SIZE="8">` +
			strings.Replace(string(js), "\n", `<BR ALIGN="LEFT"/>`, -1) +
			`</FONT>`

		color := "black"
		fillcolor := "#99ddc8"
		style := "rounded,filled"
		if s.Data().Active.Get() {
			color = "red"
			fillcolor = "#f98b8b"
		}
		if !s.Data().Visible.Get() {
			style += ",dashed"
		}
		fmt.Fprintf(w, "  s%d [style=\"%s\", color=\"%s\", fillcolor=\"%s\", label=<%s> ]\n",
			s.ID, style, color, fillcolor, label)
	}

	for i := len(ss) - 1; 0 < i; i-- {
		fmt.Fprintf(w, "  s%d -> s%d [ color=\"black\" ]\n", ss[i].ID, ss[i-1].ID)
	}
	for _, s := range ss {
		if t := s.Target(); t != nil {
			fmt.Fprintf(w, "  s%d -> s%d [ color=\"red\" style=\"dashed\" label=\"anchor\" constraint=false ]\n",
				s.ID, t.ID)
		}
	}

	fmt.Fprintf(w, "}\n")
	return w.Close()
}

// PNG generates a PNG image based on output from Dot.
//
// This function with write two files: basename.dot and basename.png,
// where the basename is the given string.
func PNG(c *stack.Collection, basename string) (string, error) {
	dotname := basename + ".dot"
	pngname := basename + ".png"

	dotfile, err := os.Create(dotname)
	if err != nil {
		return pngname, err
	}
	if err := Dot(c, dotfile); err != nil {
		return pngname, err
	}
	cmd := "dot -Tpng " + dotname + " > " + pngname
	if err := exec.Command("bash", "-c", cmd).Run(); err != nil {
		return pngname, err
	}
	return pngname, nil
}
