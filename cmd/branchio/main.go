package main

import "github.com/deppfellow/go-branchio/internal/cli"

func main() {
	cli.Execute()
}
