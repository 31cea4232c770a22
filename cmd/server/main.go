package main

import (
	"os"

	"github.com/plantnet-dev/plantnet/internal/server"
	"github.com/plantnet-dev/plantnet/pkg/logger"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
