// Package cli is the terminal front end for the weather controller.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/skyglance/weather/internal/logger"
	"github.com/skyglance/weather/internal/weatherui"
)

const (
	cmdDetect = "/detect"
	cmdQuit   = "/quit"
)

// TerminalView renders controller updates as text
type TerminalView struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminalView creates a view writing to out
func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out}
}

func (v *TerminalView) ShowLoading() {
	v.write("Loading...\n")
}

func (v *TerminalView) ShowError(message string) {
	v.write("Error: " + message + "\n")
}

func (v *TerminalView) ShowWeather(d weatherui.Display) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s  %s\n", d.City, d.Country, d.Icon)
	fmt.Fprintf(&b, "  %s  %s\n", d.Temperature, d.Description)
	fmt.Fprintf(&b, "  Feels like  %s\n", d.FeelsLike)
	fmt.Fprintf(&b, "  Humidity    %s\n", d.Humidity)
	fmt.Fprintf(&b, "  Wind        %s %s\n", d.WindSpeed, d.WindDirection)
	fmt.Fprintf(&b, "  Visibility  %s\n", d.Visibility)
	fmt.Fprintf(&b, "  Pressure    %s\n", d.Pressure)
	v.write(b.String())
}

func (v *TerminalView) write(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = io.WriteString(v.out, s)
}

// Lookups are the user-triggered controller operations
type Lookups interface {
	AutoDetect(ctx context.Context)
	SearchByCity(ctx context.Context, input string)
}

// Run starts an auto-detect, then turns each input line into a city search.
// "/detect" re-runs auto-detect and "/quit" exits. Lookups run in the
// background so a new one can start before the previous one resolves.
// Run returns when input ends, on /quit or when ctx is done, after every
// in-flight lookup has finished. It does not wait for the reader: a read
// blocked on in stays blocked until in is closed or yields more data, and
// its goroutine exits then.
func Run(ctx context.Context, in io.Reader, lookups Lookups, log *logger.Logger) error {
	if log == nil {
		log = logger.Discard()
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	spawn := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	spawn(func() { lookups.AutoDetect(ctx) })

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("cli: failed to read input: %w", err)
					}
				default:
				}
				return nil
			}

			switch strings.TrimSpace(line) {
			case cmdQuit:
				log.Debug("quit requested")
				return nil
			case cmdDetect:
				spawn(func() { lookups.AutoDetect(ctx) })
			default:
				spawn(func() { lookups.SearchByCity(ctx, line) })
			}
		}
	}
}
