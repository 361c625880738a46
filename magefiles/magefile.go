//go:build mage

// Package main provides build targets for the keeper project using Mage.
//
// Usage:
//
//	mage build    Compile keeper binary to bin/
//	mage test     Run all tests
//	mage cover    Run tests with a coverage profile in bin/coverage.out
//	mage lint     Run golangci-lint
//	mage smoke    Build, then run the restart scenario against the binary
//	mage clean    Remove build artifacts
//	mage install  Install keeper to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "keeper"
	binaryDir  = "bin"
	cmdDir     = "./cmd/keeper"
)

// Build compiles the keeper binary to bin/.
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

// Cover runs all tests and writes a coverage profile to bin/coverage.out.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Smoke builds the binary and checks that a recorded score survives a
// restart, for both backends.
func Smoke() error {
	mg.Deps(Build)

	bin, err := filepath.Abs(filepath.Join(binaryDir, binaryName))
	if err != nil {
		return err
	}

	for _, backend := range []string{"file", "sqlite"} {
		if err := smokeBackend(bin, backend); err != nil {
			return fmt.Errorf("%s: %w", backend, err)
		}
		fmt.Printf("smoke %s: ok\n", backend)
	}
	return nil
}

func smokeBackend(bin, backend string) error {
	dir, err := os.MkdirTemp("", "keeper-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	keeper := func(args ...string) (string, error) {
		base := []string{
			"--config-dir", filepath.Join(dir, "config"),
			"--data-dir", filepath.Join(dir, "data"),
			"--backend", backend,
		}
		return sh.Output(bin, append(base, args...)...)
	}

	if _, err := keeper("init"); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if _, err := keeper("record", "best", "7"); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	got, err := keeper("decode", "best")
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if strings.TrimSpace(got) != "7" {
		return fmt.Errorf("decode after restart = %q, want 7", got)
	}
	return nil
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
