/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/notargets/tetmsh/InputParameters"
	"github.com/notargets/tetmsh/mesh/readers"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [mesh file]",
	Short: "Validate a mesh and audit its adjacency table",
	Long: `
Parses a mesh file and audits the post-construction invariants:
neighbour reciprocity, no isolated elements, and resolvable medium
tags. Exits non-zero on any violation.

Run parameters can also come from a YAML file:

tetmsh check --input run.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rp := &InputParameters.RunParameters{
			PrintStatistics:  false,
			CheckReciprocity: true,
		}
		if inputFile, _ := cmd.Flags().GetString("input"); inputFile != "" {
			data, err := os.ReadFile(inputFile)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if err := rp.Parse(data); err != nil {
				fmt.Printf("failed to parse run parameters: %v\n", err)
				os.Exit(1)
			}
			rp.Print()
		}
		if len(args) == 1 {
			rp.MeshFile = args[0]
		}
		if err := rp.Validate(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if rp.Profile {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		m, err := readers.ReadMeshFile(rp.MeshFile)
		if err != nil {
			fmt.Printf("failed to read %s: %v\n", rp.MeshFile, err)
			os.Exit(1)
		}
		if rp.CheckReciprocity {
			if err := m.Validate(); err != nil {
				fmt.Printf("mesh validation failed: %v\n", err)
				os.Exit(1)
			}
		}
		if rp.PrintStatistics {
			m.PrintStatistics()
		}
		fmt.Printf("%s: OK, %d elements, %d boundary faces\n",
			rp.MeshFile, m.NumElements(), m.BoundaryFaces())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("input", "i", "", "YAML run parameter file")
}
