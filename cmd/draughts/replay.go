package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/errors"
	"github.com/lgbarn/draughts-go/internal/hashing"
	"github.com/lgbarn/draughts-go/internal/matching"
	"github.com/lgbarn/draughts-go/internal/notation"
	"github.com/lgbarn/draughts-go/internal/output"
	"github.com/lgbarn/draughts-go/internal/processing"
	"github.com/lgbarn/draughts-go/internal/worker"
)

// replayContext holds what a replay run shares across input files.
type replayContext struct {
	cfg      *config.Config
	detector *hashing.ThreadSafeDuplicateDetector // nil disables duplicate detection
	matcher  matching.GameMatcher                 // nil selects every game
}

// selected reports whether a result should be written. Failures are always
// written.
func (rc *replayContext) selected(res worker.ProcessResult) bool {
	if res.Error != nil {
		return true
	}
	if res.Duplicate && *suppressDuplicates {
		return false
	}
	return rc.matcher == nil || rc.matcher.Match(res.Analysis)
}

// runReplay replays every game in the named files, or stdin when there are
// none, and writes one report per selected game.
func runReplay(rc *replayContext, args []string) error {
	cfg := rc.cfg
	w := output.NewResultWriter(cfg.OutputFile, cfg)
	var all []worker.ProcessResult
	written := 0

	replay := func(r io.Reader, name string) (stop bool, err error) {
		results, err := replayInput(r, name, cfg, rc.detector)
		if err != nil {
			return cfg.Replay.StopOnError, err
		}
		for _, res := range results {
			all = append(all, res)
			if !rc.selected(res) {
				continue
			}
			written++
			if err := w.WriteResult(res); err != nil {
				return true, err
			}
			if res.Error != nil && cfg.Replay.StopOnError {
				return true, nil
			}
		}
		return false, nil
	}

	if len(args) == 0 {
		if _, err := replay(os.Stdin, "stdin"); err != nil {
			return err
		}
	}
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			cfg.Logf(config.Silent, "Error opening file %s: %v\n", filename, err)
			if cfg.Replay.StopOnError {
				return err
			}
			continue
		}
		stop, err := replay(file, filename)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			if stop {
				return err
			}
			cfg.Logf(config.Silent, "%v\n", err)
		}
		if stop {
			break
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	if !cfg.Replay.JSONFormat {
		reportStatistics(cfg, output.Summarize(all), written)
	}
	return nil
}

// replayInput parses one input and replays its games on the worker pool.
// Results come back in file order. With StopOnError, games after the first
// failure are dropped.
func replayInput(r io.Reader, name string, cfg *config.Config, detector *hashing.ThreadSafeDuplicateDetector) ([]worker.ProcessResult, error) {
	games, err := notation.ParseGames(r, name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	cfg.Logf(config.Summary, "%s: %d game(s)\n", name, len(games))

	opts := processing.OptionsFromConfig(cfg, name)
	var pool *worker.Pool
	pool = worker.NewPool(cfg.Replay.Workers, cfg.Replay.QueueSize(), func(item worker.WorkItem) worker.ProcessResult {
		a := processing.AnalyzeGame(item.Game, opts)
		res := worker.ProcessResult{Game: item.Game, File: item.File, Index: item.Index, Analysis: a, Error: a.Err}
		if a.Err != nil {
			cfg.Logf(config.Commentary, "%v\n", a.Err)
			if cfg.Replay.StopOnError {
				pool.Stop()
			}
			return res
		}
		if detector != nil {
			res.Duplicate = detector.CheckAndAdd(a.Signature())
		}
		return res
	})
	pool.Start()

	go func() {
		for i, g := range games {
			if pool.IsStopped() {
				break
			}
			pool.Submit(worker.WorkItem{Game: g, File: name, Index: i})
		}
		pool.Close()
	}()

	results := worker.CollectOrdered(pool)
	if cfg.Replay.StopOnError {
		results = truncateAtFailure(results)
	}
	return results, nil
}

// truncateAtFailure keeps results up to and including the first failure.
// Games after it may or may not have been replayed before the pool stopped,
// so they are never reported.
func truncateAtFailure(results []worker.ProcessResult) []worker.ProcessResult {
	for i, r := range results {
		if r.Error != nil {
			return results[:i+1]
		}
	}
	return results
}

// reportStatistics prints the final totals to the log.
func reportStatistics(cfg *config.Config, s output.Summary, written int) {
	if cfg.Verbosity < config.Summary || cfg.LogFile == nil {
		return
	}
	output.WriteSummary(cfg.LogFile, s)
	if written != s.Games {
		fmt.Fprintf(cfg.LogFile, "%d game(s) output out of %d.\n", written, s.Games)
	}
}
