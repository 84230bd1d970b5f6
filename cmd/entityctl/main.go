// Package main provides the entityctl CLI.
//
// entityctl works with entity declaration files:
//   - check lints declarations and, optionally, whether a Go type can back them
//   - render projects YAML or JSON documents through a declared entity
//   - fields shows how a declared entity resolves its fields
package main

func main() {
	Execute()
}
