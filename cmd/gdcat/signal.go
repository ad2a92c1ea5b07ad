// +build linux darwin freebsd

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/xtaci/gd/gd"
)

// installSigHandler dumps eng's stats snapshot on SIGUSR1, the same
// on-demand introspection hook client/signal.go wires up for
// kcp.DefaultSnmp.
func installSigHandler(eng *gd.Engine) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	signal.Ignore(syscall.SIGPIPE)

	go func() {
		for range ch {
			log.Printf("gd stats: %+v", eng.Snapshot())
		}
	}()
}
