package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/AnatoleLucet/frp"
)

// drainInterval is how often the loop checks for pending timers once the
// input has ended.
const drainInterval = 10 * time.Millisecond

// runPipeline streams the lines of in through the configured stages and
// writes what comes out to out, one line per event. It returns once the input
// is exhausted and every pending timer has fired, or when ctx is done.
func runPipeline(ctx context.Context, in io.Reader, out io.Writer, cfg *Config, log *slog.Logger, opts ...frp.LoopOption) error {
	opts = append([]frp.LoopOption{frp.WithLogger(log.With("subsystem", "loop"))}, opts...)
	loop := frp.NewLoop(opts...)
	frp.SetLoop(loop)
	defer frp.Release()

	owner := frp.NewOwner()
	defer owner.Dispose()

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		lines             *frp.EventStream[string]
		written           int
		readErr, writeErr error
	)
	err := owner.Run(func() error {
		lines = frp.NewEventStream[string]()

		result, err := Build(lines, cfg.Stages)
		if err != nil {
			return err
		}

		result.ForEach(func(line string) {
			if writeErr != nil {
				return
			}

			if _, err := fmt.Fprintln(out, line); err != nil {
				writeErr = fmt.Errorf("write output: %w", err)
				cancel()
				return
			}
			written++
		})

		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("pipeline built", "stages", cfg.Stages)

	var drain func()
	drain = func() {
		if loop.Pending() > 0 {
			loop.AfterFunc(drainInterval, drain)
			return
		}

		cancel()
	}

	go func() {
		read := 0
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			loop.Post(func() { lines.Emit(line) })
			read++
		}

		err := scanner.Err()
		loop.Post(func() {
			log.Debug("input ended", "lines", read, "error", err)
			if err != nil {
				readErr = fmt.Errorf("read input: %w", err)
				cancel()
				return
			}

			loop.AfterFunc(cfg.Linger, drain)
		})
	}()

	runErr := loop.Run(ctx)
	log.Info("pipeline done", "written", written)

	if err := errors.Join(readErr, writeErr); err != nil {
		return err
	}
	if err := parent.Err(); err != nil {
		return err
	}
	if !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	return nil
}
