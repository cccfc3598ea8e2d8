package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const ExitCodeMainError = 1

const ListenPort = ":8080"

func RunApp() error {
	gin.SetMode(gin.ReleaseMode)

	container := BuildServiceContainer()

	container.ChangeDispatcher.Start()
	defer container.ChangeDispatcher.Close()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ListenPort
	}

	slog.Info("listening", "addr", addr)

	return http.ListenAndServe(addr, container.Router)
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
	}

	if err != nil {
		return ExitCodeMainError
	}

	return 0
}
