package main

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/prompt"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Ask for S, K, r, sigma and T, then print prices and Greeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}
}

// gatedWriter serializes writes and drops everything after Close.
type gatedWriter struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

func (g *gatedWriter) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return len(p), nil
	}
	return g.w.Write(p)
}

// Close waits for an in-flight write and silences the writer.
func (g *gatedWriter) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

// runInteractive runs one pricing session. Interrupts and end of input end
// the session with the farewell banner; engine failures are printed.
//
// The session goroutine writes through a gate that is closed before the
// banners are printed, so a session still blocked on input cannot write
// after them.
func (a *app) runInteractive(cmd *cobra.Command) error {
	f := a.formatter()
	msgs := f.Messages()
	out := cmd.OutOrStdout()
	sessionOut := &gatedWriter{w: out}

	f.Header(out)
	defer f.Farewell(out)

	done := make(chan error, 1)
	go func() {
		done <- a.session(cmd, sessionOut)
	}()

	select {
	case err := <-done:
		_ = sessionOut.Close()
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintf(out, "\n\n%s\n", msgs.Interrupted)
			return nil
		}
		return err
	case <-cmd.Context().Done():
		_ = sessionOut.Close()
		fmt.Fprintf(out, "\n\n%s\n", msgs.Interrupted)
		return nil
	}
}

func (a *app) session(cmd *cobra.Command, out io.Writer) error {
	f := a.formatter()

	p, err := prompt.New(cmd.InOrStdin(), out, f.Messages()).Parameters()
	if err != nil {
		return err
	}

	logger.Infof("%s", f.Messages().Computing)
	res, err := pricing.Price(p, pricing.WithObserver(logger.PricingObserver()))
	if err != nil {
		f.Error(out, err, errors.Is(err, pricing.ErrInvalidParameters))
		return nil
	}
	f.Result(out, res)
	logger.Infof("pricing completed")
	return nil
}
