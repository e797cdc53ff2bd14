package main

import (
	"log"
	"os"
	"syscall"
)

const attachParentProcess = ^uint32(0) // (DWORD)-1

var procAttachConsole = syscall.NewLazyDLL("kernel32.dll").NewProc("AttachConsole")

// keep the original handles reachable
var oldStdout, oldStderr = os.Stdout, os.Stderr //lint:ignore U1000 Prevent GC of the original std handles

// attachConsole sends log output to the terminal the dashboard was started
// from. A GUI build has no console of its own.
func attachConsole() {
	if r1, _, _ := syscall.SyscallN(procAttachConsole.Addr(), uintptr(attachParentProcess)); r1 == 0 {
		// started from explorer, nothing to attach to
		return
	}
	if h, err := syscall.GetStdHandle(syscall.STD_OUTPUT_HANDLE); err == nil {
		os.Stdout = os.NewFile(uintptr(h), "/dev/stdout")
	}
	if h, err := syscall.GetStdHandle(syscall.STD_ERROR_HANDLE); err == nil {
		os.Stderr = os.NewFile(uintptr(h), "/dev/stderr")
		log.SetOutput(os.Stderr)
	}
}

func init() {
	attachConsole()
}
