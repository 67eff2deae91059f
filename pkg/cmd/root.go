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

// Package cmd wires the plain-text model front-end (pkg/model), the
// reachability and synthesis engine (pkg/reach) and the two output
// renderers (pkg/format) behind the CLI surface spec §6 names as a
// contract: -j for structured output, -b for a progress display, -t N
// for worker count, and a positional model file (or - / absent for
// standard input).
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via
// "go install".
var Version string

// rootCmd represents the sapo command.
var rootCmd = &cobra.Command{
	Use:   "sapo [flags] model-file",
	Short: "Reachability analysis and STL parameter synthesis for polynomial dynamical systems.",
	Long: `sapo reads a discrete-time (or Euler/RK4-discretized continuous) polynomial
dynamical system with an initial bundle of parallelotopes, and either
computes a flowpipe over-approximating its reachable states or synthesizes
the subset of a parameter polytope for which a signal temporal logic
specification holds.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		if getFlag(cmd, "version") {
			printVersion()
			return
		}
		//
		runModel(cmd, args)
	},
}

func printVersion() {
	fmt.Print("sapo ")
	//
	if Version != "" {
		fmt.Printf("%s", Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Printf("%s", info.Main.Version)
	} else {
		fmt.Printf("(unknown version)")
	}
	//
	fmt.Println()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("json", "j", false, "produce structured (JSON) output")
	rootCmd.Flags().BoolP("progress", "b", false, "display a live progress indicator")
	rootCmd.Flags().IntP("workers", "t", 1, "number of worker-pool goroutines")
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	//
	log.SetFormatter(&log.TextFormatter{FullTimestamp: false})
}
