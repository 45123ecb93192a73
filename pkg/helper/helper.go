package helper

import (
	"runtime"
	"strings"
)

// GetFuncName returns the name of the calling function without its package
// path, e.g. "(*UserService).RegisterUser".
func GetFuncName() string {
	pcs := make([]uintptr, 1)
	// skip runtime.Callers and GetFuncName
	if runtime.Callers(2, pcs) == 0 {
		return "unknown"
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	return shortFuncName(frame.Function)
}

func shortFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
