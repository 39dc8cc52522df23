package main

import (
	"fmt"
	"io"
)

// stdoutSink prints bridge events, standing in for the UI layer
type stdoutSink struct {
	out io.Writer
}

func newStdoutSink(out io.Writer) *stdoutSink {
	return &stdoutSink{out: out}
}

func (s *stdoutSink) Ready() bool { return true }

func (s *stdoutSink) Deliver(name, payload string) error {
	if payload == "" {
		_, err := fmt.Fprintf(s.out, "event %s\n", name)
		return err
	}
	_, err := fmt.Fprintf(s.out, "event %s %s\n", name, payload)
	return err
}
