package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen
	crashLogger = zerolog.Nop()
	crashExit   = os.Exit
)

// SetCrashScreen registers the screen restored on crash, nil clears it
func SetCrashScreen(s tcell.Screen) {
	crashMu.Lock()
	crashScreen = s
	crashMu.Unlock()
}

// SetCrashLogger registers the logger that records the panic before exit
func SetCrashLogger(l zerolog.Logger) {
	crashMu.Lock()
	crashLogger = l
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	screen, logger := crashScreen, crashLogger
	crashScreen = nil
	crashMu.Unlock()

	// Restore terminal to sane state before printing
	if screen != nil {
		screen.Fini()
	}

	stack := debug.Stack()
	logger.Error().Interface("panic", r).Bytes("stack", stack).Msg("crash")

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", stack)

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
