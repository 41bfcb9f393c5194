package errlog

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// isoFormat matches the millisecond UTC ISO-8601 layout
const isoFormat = "2006-01-02T15:04:05.000Z"

// Logger appends one line per error to a file and never fails the caller
type Logger struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func New(path string) *Logger {
	return &Logger{
		path: path,
		now:  time.Now,
	}
}

// Error records err. Nil is ignored.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.write(err.Error())
}

// Errorf records a formatted message
func (l *Logger) Errorf(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

// Recover must be deferred directly. It swallows a panic, logs it with the
// stack and lets the event loop carry on.
func (l *Logger) Recover(where string) {
	if r := recover(); r != nil {
		log.Printf("Recovered panic in %s: %v", where, r)
		l.write(fmt.Sprintf("panic in %s: %v\n%s", where, r, debug.Stack()))
	}
}

// DiscordHook is a discordgo.Logger replacement. Error level lines also go
// to the error file; everything is still printed.
func (l *Logger) DiscordHook(msgL, caller int, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	log.Printf("[discordgo] %s", msg)
	if msgL == discordgo.LogError {
		l.write("discordgo: " + msg)
	}
}

func (l *Logger) write(msg string) {
	line := fmt.Sprintf("%s - ERROR: %s\n", l.now().UTC().Format(isoFormat), strings.TrimRight(msg, "\n"))

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Error opening error log %s: %v (%s)", l.path, err, msg)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		log.Printf("Error writing error log %s: %v", l.path, err)
	}
}
