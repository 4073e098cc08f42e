package main

import "github.com/lapsekit/lapse-cli/cmd/lapse"

func main() {
	lapse.Execute()
}
