// Package logging centralizes logger construction so that every
// package shares one backend and output format.
package logging

import (
	"os"
	"sync"

	"github.com/op/go-logging"
)

const format = "%{time:15:04:05.000} %{level:-7.7s} %{shortpkg:-12.12s} %{message}"

var (
	once sync.Once
	log  *logging.Logger
)

// GetLog returns the shared module logger, configuring the backend on
// first use.
func GetLog() *logging.Logger {
	once.Do(func() {
		backend := logging.NewLogBackend(os.Stderr, "", 0)
		formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))
		leveled := logging.AddModuleLevel(formatted)
		leveled.SetLevel(logging.INFO, "")
		logging.SetBackend(leveled)
		log = logging.MustGetLogger("chesskit")
	})
	return log
}
