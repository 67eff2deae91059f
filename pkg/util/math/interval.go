// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package math

import (
	"fmt"
	"math"
)

// Infinity is the interval which encloses every other interval of doubles.
var Infinity = Interval{math.Inf(-1), math.Inf(1)}

// Interval represents a closed range of IEEE-754 doubles, such as used to
// bound the value of a polynomial or a Bernstein coefficient over the unit
// box. Unlike arbitrary-precision ranges, an Interval here is never exact in
// the presence of rounding; callers needing soundness must round outward.
type Interval struct {
	min float64
	max float64
}

// NewInterval creates an interval representing a given range.  Panics if
// lower is greater than upper.
func NewInterval(lower, upper float64) Interval {
	if lower > upper {
		panic("invalid interval")
	}

	return Interval{lower, upper}
}

// Singleton creates a zero-width interval containing exactly one value.
func Singleton(value float64) Interval {
	return Interval{value, value}
}

// Min returns the lower bound of this interval.
func (p Interval) Min() float64 {
	return p.min
}

// Max returns the upper bound of this interval.
func (p Interval) Max() float64 {
	return p.max
}

// Width returns the width of this interval (max - min).
func (p Interval) Width() float64 {
	return p.max - p.min
}

// IsFinite determines whether or not this interval has finite bounds.
func (p Interval) IsFinite() bool {
	return !math.IsInf(p.min, 0) && !math.IsInf(p.max, 0)
}

// Contains checks whether a given value lies within this interval.
func (p Interval) Contains(val float64) bool {
	return p.min <= val && val <= p.max
}

// Within checks whether this interval is contained within the given bounds.
func (p Interval) Within(other Interval) bool {
	return p.min >= other.min && p.max <= other.max
}

// Union returns the smallest interval enclosing both this interval and other.
func (p Interval) Union(other Interval) Interval {
	return Interval{math.Min(p.min, other.min), math.Max(p.max, other.max)}
}

// Add returns the interval sum of this interval and another.
func (p Interval) Add(q Interval) Interval {
	return Interval{p.min + q.min, p.max + q.max}
}

// Sub returns the interval difference of this interval and another.
func (p Interval) Sub(q Interval) Interval {
	return Interval{p.min - q.max, p.max - q.min}
}

// Mul returns the interval product of this interval and another, using the
// standard four-corner rule for interval multiplication.
func (p Interval) Mul(q Interval) Interval {
	x1 := p.min * q.min
	x2 := p.min * q.max
	x3 := p.max * q.min
	x4 := p.max * q.max
	//
	return Interval{
		min: math.Min(math.Min(x1, x2), math.Min(x3, x4)),
		max: math.Max(math.Max(x1, x2), math.Max(x3, x4)),
	}
}

// String constructs a suitable string representation of this interval.
func (p Interval) String() string {
	return fmt.Sprintf("[%v..%v]", p.min, p.max)
}
