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

import (
	"fmt"
	"io"
	"strings"

	"github.com/tonalring/ring/stack"
)

type MermaidOpts struct {
	// ShowOrdinals will result in node labels that list the
	// structure's ordinals.
	ShowOrdinals bool `json:"showOrdinals"`

	// ActiveFill is the fill color of the active structure.
	ActiveFill string `json:"activeFill,omitempty"`

	// HiddenFill is the fill color of hidden structures.
	HiddenFill string `json:"hiddenFill,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given stack.
func Mermaid(c *stack.Collection, w io.WriteCloser, opts *MermaidOpts) error {

	if opts == nil {
		opts = &MermaidOpts{
			ShowOrdinals: true,
			ActiveFill:   "#f98b8b",
			HiddenFill:   "#dddddd",
		}
	}

	ss := c.Structures.Get()

	fmt.Fprintf(w, "graph TB\n")

	nid := func(s *stack.Structure) string {
		return fmt.Sprintf("s%d", s.ID)
	}

	for i := len(ss) - 1; 0 <= i; i-- {
		s := ss[i]
		label := nid(s)
		if opts.ShowOrdinals {
			os := s.IntervalSet.Get().Ordinals()
			strs := make([]string, len(os))
			for j, o := range os {
				strs[j] = fmt.Sprint(o)
			}
			label += " [" + strings.Join(strs, " ") + "]"
		}
		if s.Target() != nil {
			fmt.Fprintf(w, "  %s[\"%s\"]\n", nid(s), label)
		} else {
			fmt.Fprintf(w, "  %s(\"%s\")\n", nid(s), label)
		}
		switch {
		case s.Data().Active.Get() && opts.ActiveFill != "":
			fmt.Fprintf(w, "  style %s fill:%s\n", nid(s), opts.ActiveFill)
		case !s.Data().Visible.Get() && opts.HiddenFill != "":
			fmt.Fprintf(w, "  style %s fill:%s\n", nid(s), opts.HiddenFill)
		}
	}

	for i := len(ss) - 1; 0 < i; i-- {
		fmt.Fprintf(w, "  %s --> %s\n", nid(ss[i]), nid(ss[i-1]))
	}
	for _, s := range ss {
		if t := s.Target(); t != nil {
			fmt.Fprintf(w, "  %s -. anchor .-> %s\n", nid(s), nid(t))
		}
	}

	fmt.Fprintf(w, "\n")

	return w.Close()
}
