package main

import (
	"os"
	"syscall"

	"github.com/roffe/speedometer/pkg/logger"
)

const ATTACH_PARENT_PROCESS = ^uint32(0) // (DWORD)-1

var (
	modkernel32       = syscall.NewLazyDLL("kernel32.dll")
	procAttachConsole = modkernel32.NewProc("AttachConsole")
)

func attachConsole(dwParentProcess uint32) (ok bool, lasterr error) {
	r1, _, lasterr := syscall.SyscallN(procAttachConsole.Addr(), uintptr(dwParentProcess), 0, 0)
	ok = bool(r1 != 0)
	return
}

var oldStdin, oldStdout, oldStderr = os.Stdin, os.Stdout, os.Stderr //lint:ignore U1000 Prevent GC of the original std handles

// A windowsgui build has no console, borrow the one of the launching shell
// so --debug output is visible.
func init() {
	ok, lasterr := attachConsole(ATTACH_PARENT_PROCESS)
	if ok {
		hout, err1 := syscall.GetStdHandle(syscall.STD_OUTPUT_HANDLE)
		if err1 != nil {
			logger.Warn().Err(err1).Msg("stdout connection error")
		}
		herr, err2 := syscall.GetStdHandle(syscall.STD_ERROR_HANDLE)
		if err2 != nil {
			logger.Warn().Err(err2).Msg("stderr connection error")
		}
		os.Stdout = os.NewFile(uintptr(hout), "/dev/stdout")
		os.Stderr = os.NewFile(uintptr(herr), "/dev/stderr")
		return
	}
	if lasterr != nil {
		logger.Debug().Err(lasterr).Msg("attachConsole failed")
	}
}
