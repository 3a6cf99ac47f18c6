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
	"fmt"
	"io"

	"github.com/tonalring/ring/geometry"
	"github.com/tonalring/ring/stack"
)

// SVG draws the ring and every visible structure on it.  Each segment
// is colored by the interval class it spans.
func SVG(c *stack.Collection, out io.Writer) error {
	const r = geometry.OuterRadius
	fmt.Fprintf(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d">`+"\n", -r, -r, 2*r, 2*r)
	fmt.Fprintf(out, `  <circle r="%d" fill="none" stroke="#888"/>`+"\n", geometry.OuterRadius)
	fmt.Fprintf(out, `  <circle r="%d" fill="none" stroke="#888"/>`+"\n", geometry.InnerRadius)

	for _, s := range c.Structures.Get() {
		if !s.Data().Visible.Get() {
			continue
		}
		shape := geometry.Project(s.IntervalSet.Get(), s.Rotation.Rotation.Get(), s.AnchorTargetIntervalSet.Get())
		if shape.Err != nil {
			return fmt.Errorf("structure %s: %w", s.ID, shape.Err)
		}
		fmt.Fprintf(out, `  <g id="s%d">`+"\n", s.ID)
		for _, l := range shape.Lines {
			fmt.Fprintf(out, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="hsl(%.0f,70%%,45%%)" stroke-width="%d"/>`+"\n",
				l.From.X, l.From.Y, l.To.X, l.To.Y, l.Hue(), geometry.LineThickness)
		}
		for _, v := range shape.Vertices {
			fmt.Fprintf(out, `    <circle cx="%.2f" cy="%.2f" r="6"/>`+"\n", v.X, v.Y)
		}
		fmt.Fprintf(out, "  </g>\n")
	}

	_, err := fmt.Fprintf(out, "</svg>\n")
	return err
}
