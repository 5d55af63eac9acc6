// Package main provides the imgres CLI for resolving and loading icon,
// cursor and bitmap resources.
package main

func main() {
	Execute()
}
