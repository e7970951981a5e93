// Package main is the entry point for the layermap CLI.
package main

import "layermap.dev/pkg/layermap/cmd"

func main() {
	cmd.Execute()
}
