package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/fsnotify/fsnotify"

	"github.com/mholmer/giftlog/ledger"
)

type LogCmd struct {
	Follow bool `help:"Keep watching the log and stream appended lines." short:"f"`
	Parsed bool `help:"Dump the parsed entries instead of the raw lines (debugging aid)."`
}

func (cmd *LogCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	path := cfg.LedgerPath()

	if cmd.Parsed {
		entries, err := ledger.ReadFile(path)
		if err != nil {
			return err
		}
		repr.Println(entries)
		return nil
	}

	offset, err := printExisting(ctx.Stdout, path)
	if err != nil {
		return err
	}

	if !cmd.Follow {
		return nil
	}
	return followLog(ctx, path, offset)
}

// printExisting copies the current log to the writer and returns the
// offset where new appends will land.
func printExisting(w io.Writer, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// followLog watches the log file and streams appended lines until
// interrupted. A truncated or replaced file restarts from the beginning.
func followLog(ctx *kong.Context, path string, offset int64) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: the log file may not exist yet, and appends on
	// some platforms surface as events on the parent.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	printInfof(ctx.Stderr, "following %s (interrupt to stop)", path)

	for {
		select {
		case <-interrupt:
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printWarning(ctx.Stderr, err.Error())
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			next, err := printAppended(ctx.Stdout, path, offset)
			if err != nil {
				printWarning(ctx.Stderr, err.Error())
				continue
			}
			offset = next
		}
	}
}

// printAppended prints everything past offset and returns the new offset.
func printAppended(w io.Writer, path string, offset int64) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return offset, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return offset, err
	}
	if info.Size() < offset {
		// Truncated or replaced: start over.
		offset = 0
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}

	reader := bufio.NewReader(f)
	n, err := io.Copy(w, reader)
	if err != nil {
		return offset, err
	}
	return offset + n, nil
}
