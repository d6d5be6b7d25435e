// Command linecat connects to a line-oriented device, optionally sends one
// command, and prints the lines it receives.
//
// Usage:
//
//	linecat --host 192.168.0.10 --port 10940 --send VV --lines 5
//
// The connection is retried with exponential backoff; reading stops after
// --lines lines, at end of stream, or when no line arrives within
// --read-timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/pflag"

	"github.com/arloliu/go-sensorlink/logger"
	"github.com/arloliu/go-sensorlink/tcpclient"
)

type options struct {
	host           string
	port           uint16
	connectTimeout time.Duration
	readTimeout    time.Duration
	retries        uint
	send           string
	lines          int
	lineSize       int
	debug          bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}

	fs := pflag.NewFlagSet("linecat", pflag.ContinueOnError)
	fs.StringVar(&opts.host, "host", "localhost", "device IPv4 address")
	fs.Uint16Var(&opts.port, "port", 10940, "device TCP port")
	fs.DurationVar(&opts.connectTimeout, "connect-timeout", tcpclient.DefaultConnectTimeout, "bound on each connect attempt")
	fs.DurationVar(&opts.readTimeout, "read-timeout", time.Second, "give up when no line arrives within this time")
	fs.UintVar(&opts.retries, "retries", 3, "connect attempts")
	fs.StringVar(&opts.send, "send", "", "command to send (LF appended) before reading")
	fs.IntVarP(&opts.lines, "lines", "n", 0, "number of lines to print, 0 = until EOF or timeout")
	fs.IntVar(&opts.lineSize, "line-size", 256, "line buffer size; longer lines are split")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.retries == 0 {
		return nil, errors.New("--retries must be at least 1")
	}
	if opts.lineSize < 2 {
		return nil, errors.New("--line-size must be at least 2")
	}
	if opts.lines < 0 {
		return nil, errors.New("--lines must not be negative")
	}

	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.SetLogger(logger.NewSlogWriter(os.Stderr, logger.InfoLevel, false))
	if opts.debug {
		logger.SetLevel(logger.DebugLevel)
	}
	log := logger.GetLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, log, os.Stdout); err != nil {
		log.Error("linecat failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, log logger.Logger, out io.Writer) error {
	client, err := tcpclient.New(
		tcpclient.WithConnectTimeout(opts.connectTimeout),
		tcpclient.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer client.Close()

	err = retry.Do(
		func() error {
			return client.Open(ctx, opts.host, opts.port)
		},
		retry.Context(ctx),
		retry.Attempts(opts.retries),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// A malformed address will not get better.
			return !errors.Is(err, tcpclient.ErrAddressParse)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("connect attempt failed", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return err
	}
	log.Info("connected", "remote", client.RemoteAddr())

	if opts.send != "" {
		if _, err := client.Write([]byte(opts.send + "\n")); err != nil {
			return err
		}
	}

	return copyLines(ctx, client, opts, out)
}

func copyLines(ctx context.Context, client *tcpclient.Client, opts *options, out io.Writer) error {
	buf := make([]byte, opts.lineSize)

	for printed := 0; opts.lines == 0 || printed < opts.lines; printed++ {
		if ctx.Err() != nil {
			return nil
		}

		n, err := client.ReadLine(buf, opts.readTimeout)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, tcpclient.ErrReadTimeout):
			return nil
		case err != nil:
			return err
		}

		if _, err := fmt.Fprintf(out, "%s\n", buf[:n]); err != nil {
			return err
		}
	}

	return nil
}
