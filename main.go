// Start Board - a start page of bookmarked projects for the terminal.
package main

import "github.com/lazyvibe/startboard/internal/cli"

func main() {
	cli.Execute()
}
