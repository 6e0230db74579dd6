package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sandeepkv93/daybook/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "daybook: %v\n", err)
		os.Exit(1)
	}
}
