// Command kanban manages kanban boards stored as JSON files.
package main

import "github.com/mesh-intelligence/kanban/internal/cli"

func main() {
	cli.Execute()
}
