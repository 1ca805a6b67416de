package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(exitError(newRootCmd().ExecuteContext(context.Background())))
}
