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
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// getFlag reads an expected bool flag, exiting if cobra itself reports an
// error (a programmer mistake in flag registration, not user input).
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// openModelInput opens the positional model-file argument, or standard
// input when it is "-" or absent, per spec §6's CLI surface.
func openModelInput(args []string) (io.Reader, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, "<stdin>", nil
	}
	//
	f, err := os.Open(args[0])
	if err != nil {
		return nil, args[0], err
	}
	//
	return f, args[0], nil
}

// printSyntaxError prints a caret-highlighted diagnostic for a model.
// ParseError, in the teacher's S-expression front-end's style.
func printSyntaxError(filename string, msg string, offset int, text string) {
	line, lineStart, num := findEnclosingLine(offset, text)
	//
	fmt.Fprintf(os.Stderr, "%s:%d: %s\n", filename, num, msg)
	fmt.Fprintln(os.Stderr, line)
	fmt.Fprint(os.Stderr, strings.Repeat(" ", offset-lineStart))
	fmt.Fprintln(os.Stderr, "^")
}

// findEnclosingLine determines the physical line containing index,
// returning its text, its starting offset and its 1-based line number.
func findEnclosingLine(index int, text string) (string, int, int) {
	num := 1
	start := 0
	//
	// Handle the case where the error is reported at end-of-file: treat it
	// as belonging to the last physical line.
	if index >= len(text) {
		index = len(text) - 1
	}
	//
	if index < 0 {
		return "", 0, num
	}
	//
	for i := 0; i < len(text); i++ {
		if i == index {
			end := findEndOfLine(index, text)
			return text[start:end], start, num
		} else if text[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return "", start, num
}

// findEndOfLine finds the end of the line enclosing index.
func findEndOfLine(index int, text string) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	//
	return len(text)
}
