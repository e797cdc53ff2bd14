// Package debug writes a trace log next to the binary when enabled.
package debug

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu       sync.Mutex
	fh       *os.File
	enabled  bool
	filename = "debug.log"
)

// Enable turns file logging on or off, the file is opened lazily.
func Enable(on bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
	if !on && fh != nil {
		fh.Sync()
		fh.Close()
		fh = nil
	}
}

// SetFile changes the log file, it takes effect the next time the file is opened.
func SetFile(name string) {
	mu.Lock()
	filename = name
	mu.Unlock()
}

func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes msg prefixed with the time and a file:line. Log is meant to be
// called through a logging helper, so the line reported is the one that
// called that helper.
func Log(msg string) {
	timeStr := time.Now().Format("2006-01-02 15:04:05.000")
	_, fullPath, line, ok := runtime.Caller(2)
	if ok {
		LogRaw(fmt.Sprintf("%s %s:%d %s", timeStr, filepath.Base(fullPath), line, msg))
	} else {
		LogRaw(timeStr + " " + msg)
	}
}

func LogRaw(msg string) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	if fh == nil {
		var err error
		fh, err = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("error opening debug log: %v", err)
			enabled = false
			return
		}
	}
	fh.WriteString(msg + "\n")
}

func Close() {
	Enable(false)
}
