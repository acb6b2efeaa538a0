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

	"github.com/notargets/tetmsh/mesh/readers"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [mesh file]",
	Short: "Load a mesh file and print its statistics",
	Long: `
Parses a Gmsh MSH 4.1 mesh file, builds the face-adjacency table, and
prints node/element/media counts, face counts and per-medium volumes.

tetmsh info mesh.msh`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		m, err := readers.ReadMeshFile(args[0])
		if err != nil {
			fmt.Printf("failed to read %s: %v\n", args[0], err)
			os.Exit(1)
		}
		m.PrintStatistics()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolP("profile", "p", false, "write a CPU profile for the parse and adjacency build")
}
