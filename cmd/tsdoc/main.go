package main

import "github.com/mvp-joe/tsdoc/internal/cli"

func main() {
	cli.Execute()
}
