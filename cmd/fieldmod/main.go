// Package main provides the fieldmod CLI.
package main

import "github.com/mesh-intelligence/fieldmod/internal/cli"

func main() {
	cli.Execute()
}
