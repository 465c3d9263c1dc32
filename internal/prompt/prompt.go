// Package prompt reads credentials from the controlling terminal.
package prompt

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/term"
)

// interruptExitCode is the shell convention for death by SIGINT
const interruptExitCode = 130

// InputError indicates interactive input could not be obtained
type InputError struct {
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Terminal reads input from In, writing prompts to Out
type Terminal struct {
	In  *os.File
	Out io.Writer
}

// NewTerminal returns a Terminal on stdin, prompting on stderr
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// ReadPassword prints label and reads a line with echo disabled.
// Echo is restored when the read returns, whether it succeeded or not;
// an interrupt during the read restores it and exits the process.
func (t *Terminal) ReadPassword(label string) (string, error) {
	fd := int(t.In.Fd())
	if !term.IsTerminal(fd) {
		return "", &InputError{Reason: "cannot get input on a noninteractive terminal"}
	}

	state, err := term.GetState(fd)
	if err != nil {
		return "", &InputError{Reason: "failed to read terminal state", Err: err}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	stop := exitOnInterrupt(sigs, func() {
		_ = term.Restore(fd, state)
		fmt.Fprintln(t.Out)
	}, os.Exit)
	defer func() {
		signal.Stop(sigs)
		stop()
	}()

	fmt.Fprint(t.Out, label)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(t.Out) // newline after password
	if err != nil {
		return "", &InputError{Reason: "failed to read password", Err: err}
	}
	return string(pw), nil
}

// exitOnInterrupt calls restore then exit if a signal arrives on sigs
// before the returned stop func is called. stop returns once the watcher
// has finished, so no signal is acted on after it.
func exitOnInterrupt(sigs <-chan os.Signal, restore func(), exit func(int)) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-sigs:
			restore()
			exit(interruptExitCode)
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
