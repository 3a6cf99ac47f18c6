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

// Package geometry places structures on the ring.
//
// Positions on the ring are given in "interval" coordinates: interval
// 0 is at the top and interval 3 is at three o'clock, so a point
// moves clockwise as its interval grows.  Y grows downward, as in SVG.
package geometry

import (
	"math"
	"strconv"

	"github.com/tonalring/ring/intervals"
)

// Ring dimensions.
const (
	OuterRadius     = 425
	InnerRadius     = 110
	KeyMargin       = 20
	OuterKeyRadius  = OuterRadius - KeyMargin
	InnerKeyRadius  = InnerRadius + KeyMargin
	MiddleRadius    = (OuterRadius + InnerRadius) / 2.0
	StructureRadius = 360
	TextRadius      = 458
	LineThickness   = 3
)

// Point is a Cartesian point.
type Point struct {
	X, Y float64
}

// PointAt converts an interval and a radius to a Point.
func PointAt(interval, radius float64) Point {
	theta := 2 * math.Pi * interval / intervals.Divisions
	return Point{
		X: radius * math.Sin(theta),
		Y: -radius * math.Cos(theta),
	}
}

// Interval is the inverse of PointAt, giving an interval in [0, 12)
// and a radius.
func (p Point) Interval() (interval, radius float64) {
	radius = math.Hypot(p.X, p.Y)
	if radius == 0 {
		return 0, 0
	}
	theta := math.Atan2(p.X, -p.Y)
	return intervals.WrapFloat(theta*intervals.Divisions/(2*math.Pi), intervals.Divisions), radius
}

func (p Point) String() string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

// Line is a segment.
type Line struct {
	From, To Point
}

// Along gives the point that is fraction f of the way along l.
func Along(l Line, f float64) Point {
	return Point{
		X: l.From.X + (l.To.X-l.From.X)*f,
		Y: l.From.Y + (l.To.Y-l.From.Y)*f,
	}
}

// Hue is the color of a segment, by the interval class it spans.
func (l Line) Hue() float64 {
	a, _ := l.From.Interval()
	b, _ := l.To.Interval()
	return SegmentHue(a, b)
}

// SegmentHue gives a hue in degrees for the interval class between
// two intervals: 0 for a half step up to 300 for a tritone.
func SegmentHue(a, b float64) float64 {
	d := intervals.Wrap(int(math.Round(b-a)), intervals.Divisions)
	if intervals.Divisions/2 < d {
		d = intervals.Divisions - d
	}
	if d == 0 {
		return 0
	}
	return float64(d-1) * 60
}

// VertexAtOrdinal is where an unrotated vertex sits.
func VertexAtOrdinal(ordinal int) Point {
	return PointAt(float64(ordinal), StructureRadius)
}

// PointOnAnchorTarget places one vertex of an anchored structure.
//
// A rotation of a full revolution moves the vertex all the way around
// the target's polygon, so rotation moves the vertex along the
// target's edges rather than around the circle.
func PointOnAnchorTarget(ordinal int, rotation float64, target intervals.Set) (Point, error) {
	ordinals := target.Ordinals()
	index := -1
	for i, o := range ordinals {
		if o == ordinal {
			index = i
			break
		}
	}
	if index < 0 {
		return Point{}, &GeometryError{
			Ordinal: ordinal,
			Target:  target,
		}
	}

	n := len(ordinals)
	at := func(i int) Point {
		return VertexAtOrdinal(ordinals[intervals.Wrap(i, n)])
	}
	revolutions := intervals.WrapFloat(rotation/intervals.Divisions, 1)
	position := float64(index) + revolutions*float64(n)
	whole, frac := math.Modf(position)
	if frac == 0 {
		return at(int(whole)), nil
	}
	return Along(Line{at(int(whole)), at(int(whole) + 1)}, frac), nil
}

// Vertices places every vertex of a structure.  When anchored is
// true, the vertices follow the target's polygon.
func Vertices(is intervals.Set, rotation float64, target intervals.Set, anchored bool) ([]Point, error) {
	ordinals := is.Ordinals()
	acc := make([]Point, len(ordinals))
	for i, o := range ordinals {
		if !anchored {
			acc[i] = PointAt(float64(o)+rotation, StructureRadius)
			continue
		}
		p, err := PointOnAnchorTarget(o, rotation, target)
		if err != nil {
			return nil, err
		}
		acc[i] = p
	}
	return acc, nil
}

// SegmentLines connects the vertices in order, closing the polygon
// when there are more than two.
func SegmentLines(vs []Point) []Line {
	var acc []Line
	for i := 1; i < len(vs); i++ {
		acc = append(acc, Line{vs[i-1], vs[i]})
	}
	if 2 < len(vs) {
		acc = append(acc, Line{vs[len(vs)-1], vs[0]})
	}
	return acc
}
