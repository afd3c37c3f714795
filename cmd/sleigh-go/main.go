package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "net/http/pprof"

	"github.com/lockbox/sleigh-go/internal/cli"
)

func main() {
	if os.Getenv("SLEIGHGO_PROFILE") != "" {
		go func() {
			slog.Info("serving pprof at localhost:6060")
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				slog.Error("pprof listen failed", "error", err)
			}
		}()
	}

	cli.Execute()
}
