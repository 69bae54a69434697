//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "slangify"
	lambdaName = "bootstrap"
)

// Default target to run when none is specified
var Default = Build

// Build builds the slangify binary
func Build() error {
	fmt.Println("Building slangify...")
	return sh.RunV("go", "build", "-o", binaryName, "./cmd/slangify")
}

// Lambda builds the Lambda bootstrap binary for the provided.al2023 runtime
func Lambda() error {
	fmt.Println("Building Lambda bootstrap...")
	env := map[string]string{
		"GOOS":        "linux",
		"GOARCH":      "arm64",
		"CGO_ENABLED": "0",
	}
	return sh.RunWithV(env, "go", "build", "-tags", "lambda.norpc", "-o", filepath.Join("dist", lambdaName), "./cmd/slangify-lambda")
}

// Install installs slangify to GOPATH/bin
func Install() error {
	mg.Deps(Build)
	fmt.Println("Installing slangify...")
	return sh.RunV("go", "install", "./cmd/slangify")
}

// Test runs all tests
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Integration runs the tests that call the live model providers
func Integration() error {
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		return fmt.Errorf("GEMINI_API_KEY or GOOGLE_API_KEY must be set")
	}
	fmt.Println("Running integration tests...")
	return sh.RunV("go", "test", "-count=1", "./internal/...")
}

// Vet runs go vet
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Fmt formats the code
func Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-s", "-w", ".")
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	for _, path := range []string{binaryName, "dist"} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}

// All runs vet, tests and the builds
func All() {
	mg.SerialDeps(Vet, Test, Build, Lambda)
}
