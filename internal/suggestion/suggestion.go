/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package suggestion ranks schema names by lexical closeness to an unresolved name, so a
// validation error can append a "Did you mean ...?" hint the way the reference GraphQL.js
// implementation does for unknown fields, arguments and types.
package suggestion

import (
	"math"
	"sort"
	"strings"
)

type listSorter struct {
	options   []string
	distances []int
}

var _ sort.Interface = (*listSorter)(nil)

func (s *listSorter) Len() int      { return len(s.options) }
func (s *listSorter) Swap(i, j int) { s.options[i], s.options[j] = s.options[j], s.options[i]; s.distances[i], s.distances[j] = s.distances[j], s.distances[i] }
func (s *listSorter) Less(i, j int) bool { return s.distances[i] < s.distances[j] }

// List returns the subset of options within edit-distance threshold of input, nearest first.
func List(input string, options []string) []string {
	if len(options) == 0 {
		return nil
	}

	var filtered []string
	var distances []int
	inputThreshold := float64(len(input)) / 2.0
	for _, option := range options {
		distance := lexicalDistance(input, option)
		threshold := math.Max(math.Max(inputThreshold, float64(len(option))/2.0), 1)
		if float64(distance) <= threshold {
			filtered = append(filtered, option)
			distances = append(distances, distance)
		}
	}

	sort.Sort(&listSorter{filtered, distances})
	return filtered
}

// Suffix renders List's result as a " Did you mean 'X', 'Y' or 'Z'?" clause, or "" when empty.
func Suffix(input string, options []string) string {
	matches := List(input, options)
	if len(matches) == 0 {
		return ""
	}
	return " Did you mean " + orList(matches) + "?"
}

func orList(items []string) string {
	switch len(items) {
	case 1:
		return "'" + items[0] + "'"
	case 2:
		return "'" + items[0] + "' or '" + items[1] + "'"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}

// lexicalDistance computes a Damerau-Levenshtein edit distance between aStr and bStr, folding a
// pure case difference to a distance of 1.
func lexicalDistance(aStr, bStr string) int {
	if aStr == bStr {
		return 0
	}

	a := strings.ToLower(aStr)
	b := strings.ToLower(bStr)
	if a == b {
		return 1
	}

	aLength := len(a)
	bLength := len(b)
	d := make([][]int, aLength+1)
	for i := 0; i <= aLength; i++ {
		d[i] = make([]int, bLength+1)
		d[i][0] = i
	}
	for j := 1; j <= bLength; j++ {
		d[0][j] = j
	}

	for i := 1; i <= aLength; i++ {
		for j := 1; j <= bLength; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			min := d[i-1][j] + 1
			if y := d[i][j-1] + 1; y < min {
				min = y
			}
			if z := d[i-1][j-1] + cost; z < min {
				min = z
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if w := d[i-2][j-2] + cost; w < min {
					min = w
				}
			}

			d[i][j] = min
		}
	}

	return d[aLength][bLength]
}
