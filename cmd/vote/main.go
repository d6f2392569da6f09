package main

import (
	"github.com/zhulik/vote/internal/cli"
)

func main() {
	cli.Run()
}
