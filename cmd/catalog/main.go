// Command catalog manages a physical collection catalog.
package main

import "github.com/mesh-intelligence/catalog/internal/cli"

func main() {
	cli.Execute()
}
