//go:build windows

package platform

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"eyerest/internal/core/model"
)

const monitorInfoPrimary = 0x1

var (
	procEnumDisplayMonitors = user32DLL.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32DLL.NewProc("GetMonitorInfoW")

	// EnumDisplayMonitors calls back synchronously; enumMu guards the
	// results the callback collects.
	enumMu       sync.Mutex
	enumFound    []monitor
	enumErr      error
	enumCallback = syscall.NewCallback(enumMonitor)
)

type monitorInfo struct {
	cbSize    uint32
	rcMonitor edgeRect
	rcWork    edgeRect
	dwFlags   uint32
}

func queryDisplays() ([]model.Rect, error) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumFound, enumErr = nil, nil

	result, _, err := procEnumDisplayMonitors.Call(0, 0, enumCallback, 0)
	if enumErr != nil {
		return nil, enumErr
	}
	if result == 0 {
		return nil, fmt.Errorf("enum display monitors: %w", err)
	}
	return primaryFirst(enumFound), nil
}

func enumMonitor(handle, hdc, clip, data uintptr) uintptr {
	info := monitorInfo{cbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
	result, _, err := procGetMonitorInfoW.Call(handle, uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		enumErr = fmt.Errorf("get monitor info: %w", err)
		return 0
	}
	enumFound = append(enumFound, monitor{
		bounds:  info.rcMonitor.toRect(),
		primary: info.dwFlags&monitorInfoPrimary != 0,
	})
	return 1
}
