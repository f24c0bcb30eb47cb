//go:build mage

// Package main provides build targets for the fieldmod project using Mage.
//
// Usage:
//
//	mage build     Compile fieldmod binary to bin/
//	mage test      Run all tests
//	mage testCgo   Run tests with cgo enabled so the sqlite3 driver is live
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install fieldmod to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "fieldmod"
	binaryDir  = "bin"
	cmdDir     = "./cmd/fieldmod"
)

// Build compiles the fieldmod binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestCgo runs all tests with CGO_ENABLED=1.
func TestCgo() error {
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, binGo, "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
