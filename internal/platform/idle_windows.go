//go:build windows

package platform

import (
	"errors"
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

var (
	kernel32DLL          = syscall.NewLazyDLL("kernel32.dll")
	procGetLastInputInfo = user32DLL.NewProc("GetLastInputInfo")
	procGetTickCount     = kernel32DLL.NewProc("GetTickCount")
)

type idleProvider struct{}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		if err == nil {
			err = errors.New("unknown error")
		}
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	// Both counters are 32-bit milliseconds; unsigned subtraction survives wraparound.
	now, _, _ := procGetTickCount.Call()
	idleMillis := uint32(now) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
