package main

import (
	"github.com/kcaldas/themekit/cmd/cli"
)

func main() {
	cli.Execute()
}
