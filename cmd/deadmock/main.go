// Package main is the entry point for deadmock, a mock HTTP origin server
// driven by declarative TOML mapping files.
package main

func main() {
	Execute()
}
