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

package tools

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tonalring/ring/music"
	"github.com/tonalring/ring/stack"

	md "github.com/russross/blackfriday/v2"
)

// StackMarkdown writes a Markdown report of the stack, top first.  If
// notesOf isn't nil, it gives the notes to list for each structure.
func StackMarkdown(c *stack.Collection, notesOf func(*stack.Structure) []music.Pitch, out io.Writer) {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	ss := c.Structures.Get()
	f("%d structures, largest id %d.", len(ss), c.MaxID())
	f("")
	f("| id | ordinals | binary | visible | anchored to | notes |")
	f("|---|---|---|---|---|---|")
	for i := len(ss) - 1; 0 <= i; i-- {
		s := ss[i]
		id := s.ID.String()
		if s.Data().Active.Get() {
			id = "**" + id + "**"
		}
		target := ""
		if t := s.Target(); t != nil {
			target = t.ID.String()
		}
		notes := ""
		if notesOf != nil {
			notes = strings.Join(music.SlashNotation(notesOf(s)), " ")
		}
		f("| %s | `%v` | %d | %v | %s | %s |",
			id, s.IntervalSet.Get().Ordinals(), s.IntervalSet.Get().Binary(),
			s.Data().Visible.Get(), target, notes)
	}
}

// RenderStackHTML renders the StackMarkdown report as HTML.
func RenderStackHTML(c *stack.Collection, notesOf func(*stack.Structure) []music.Pitch, out io.Writer) error {
	var buf bytes.Buffer
	StackMarkdown(c, notesOf, &buf)
	_, err := fmt.Fprintf(out, "<div class=\"stackDoc doc\">%s</div>\n", md.Run(buf.Bytes()))
	return err
}

// RenderStackPage writes a whole HTML page with the report and an SVG
// picture of the ring.
func RenderStackPage(c *stack.Collection, notesOf func(*stack.Structure) []music.Pitch, out io.Writer, title string, cssFiles []string) error {

	if cssFiles == nil {
		cssFiles = []string{"/static/stack-html.css"}
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, title)

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, title)

	if err := SVG(c, out); err != nil {
		return err
	}

	if err := RenderStackHTML(c, notesOf, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}
