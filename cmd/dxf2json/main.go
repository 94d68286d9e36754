// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gocadkit/dxf"
)

var (
	wantHeader    bool
	wantTables    bool
	wantBlocks    bool
	wantEntities  bool
	wantObjects   bool
	wantAnomalies bool
	wantAll       bool
)

func prettyPrint(v any) string {
	buff, err := json.Marshal(v)
	if err != nil {
		log.Printf("JSON marshal error: %v", err)
		return ""
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buff, "", "\t"); err != nil {
		return string(buff)
	}
	return pretty.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpDrawing(filename string) {
	log.Printf("processing %s", filename)

	d, err := dxf.Open(filename, nil)
	if err != nil {
		log.Printf("error while opening file: %s, reason: %s", filename, err)
		return
	}

	if wantHeader || wantAll {
		fmt.Println(prettyPrint(d.Header))
	}
	if wantTables || wantAll {
		fmt.Println(prettyPrint(d.Tables))
	}
	if wantBlocks || wantAll {
		fmt.Println(prettyPrint(d.Blocks))
	}
	if wantEntities || wantAll {
		fmt.Println(prettyPrint(d.Entities()))
	}
	if wantObjects || wantAll {
		fmt.Println(prettyPrint(d.Objects()))
	}
	if wantAnomalies || wantAll {
		fmt.Println(prettyPrint(d.Anomalies))
	}
}

func dump(cmd *cobra.Command, args []string) {
	path := args[0]
	if !isDirectory(path) {
		dumpDrawing(path)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, f os.FileInfo, err error) error {
		if err == nil && !f.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	for _, f := range files {
		dumpDrawing(f)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "dxf2json",
		Short: "A drawing interchange file reader",
		Long:  "Loads a CAD drawing interchange file and writes its parsed structure as JSON",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dumps a drawing's contents as JSON",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}
	dumpCmd.Flags().BoolVarP(&wantHeader, "header", "", false, "dump header variables")
	dumpCmd.Flags().BoolVarP(&wantTables, "tables", "", false, "dump table records")
	dumpCmd.Flags().BoolVarP(&wantBlocks, "blocks", "", false, "dump block definitions")
	dumpCmd.Flags().BoolVarP(&wantEntities, "entities", "", false, "dump entities")
	dumpCmd.Flags().BoolVarP(&wantObjects, "objects", "", false, "dump non-graphical objects")
	dumpCmd.Flags().BoolVarP(&wantAnomalies, "anomalies", "", false, "dump recovered parse anomalies")
	dumpCmd.Flags().BoolVarP(&wantAll, "all", "", false, "dump everything")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
