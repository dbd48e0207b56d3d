// Package pipeline drives the two passes of a pseudonymization run.
//
// The first pass reads every triple once and records rdf:type assertions
// in a typeindex.Index. The second pass reads the triples again, asks
// rules.Match which positions to transform, applies the pseudonymizer and
// writes each triple as soon as it is done. Output order always equals
// input order.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/geoknoesis/rdf-protect/pseudo"
	"github.com/geoknoesis/rdf-protect/rdf"
	"github.com/geoknoesis/rdf-protect/rules"
	"github.com/geoknoesis/rdf-protect/typeindex"
)

// DefaultBatchSize is the number of triples handed to workers at once
// when Options.Workers is greater than one.
const DefaultBatchSize = 1024

// Options tunes the transform pass.
type Options struct {
	// Workers is the number of goroutines pseudonymizing a batch. Values
	// below two keep the pass sequential.
	Workers int
	// BatchSize is the number of triples read before a batch is
	// dispatched. Zero selects DefaultBatchSize.
	BatchSize int
}

// Stats counts the work done by a pass.
type Stats struct {
	Triples     int64         // Triples read from the source
	Indexed     int64         // New (subject, type) pairs recorded
	Transformed int64         // Triples with at least one position pseudonymized
	Duration    time.Duration // Wall time of the pass
}

// Pipeline sequences index building and transformation. A Pipeline is
// used for a single run and is not safe for concurrent use.
type Pipeline struct {
	logger        *slog.Logger
	rules         *rules.RuleSet
	pseudonymizer *pseudo.Pseudonymizer
	options       Options

	index *typeindex.Index
	state State
}

// New normalizes rs and returns an idle Pipeline. Rule errors surface here,
// before any triple is read.
func New(logger *slog.Logger, rs *rules.RuleSet, p *pseudo.Pseudonymizer, options Options) (*Pipeline, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if rs == nil {
		rs = &rules.RuleSet{}
	}
	if p == nil {
		return nil, fmt.Errorf("pipeline: nil pseudonymizer")
	}
	normalized, err := rs.Normalize()
	if err != nil {
		return nil, err
	}
	if options.BatchSize <= 0 {
		options.BatchSize = DefaultBatchSize
	}
	return &Pipeline{
		logger:        logger,
		rules:         normalized,
		pseudonymizer: p,
		options:       options,
		state:         StateIdle,
	}, nil
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State { return p.state }

// Index returns the type index, or nil before one is built or installed.
func (p *Pipeline) Index() *typeindex.Index { return p.index }

// Rules returns the normalized rules.
func (p *Pipeline) Rules() *rules.RuleSet { return p.rules }

func (p *Pipeline) expect(state State) error {
	if p.state != state {
		return fmt.Errorf("%w: %s, expected %s", ErrInvalidState, p.state, state)
	}
	return nil
}

func (p *Pipeline) fail(err error) error {
	p.state = StateFailed
	return err
}

// BuildIndex runs the first pass over src.
func (p *Pipeline) BuildIndex(ctx context.Context, src rdf.TripleDecoder) (Stats, error) {
	if err := p.expect(StateIdle); err != nil {
		return Stats{}, err
	}
	p.state = StateBuildingIndex
	p.logger.Info("building type index")

	ix, stats, err := BuildIndex(ctx, src)
	if err != nil {
		p.logger.Error("building type index failed", "triples", stats.Triples, "error", err)
		return stats, p.fail(err)
	}
	p.index = ix
	p.state = StateIndexReady
	p.logger.Info("type index ready",
		"triples", stats.Triples,
		"indexed", stats.Indexed,
		"subjects", ix.Len(),
		"types", len(ix.Types()),
		"duration", stats.Duration,
	)
	return stats, nil
}

// UseIndex installs a type index loaded from storage in place of the
// first pass.
func (p *Pipeline) UseIndex(ix *typeindex.Index) error {
	if err := p.expect(StateIdle); err != nil {
		return err
	}
	if ix == nil {
		return fmt.Errorf("pipeline: nil index")
	}
	p.index = ix
	p.state = StateIndexReady
	p.logger.Debug("using stored type index", "subjects", ix.Len(), "types", len(ix.Types()))
	return nil
}

// Transform runs the second pass, writing every triple of src to sink
// with the positions selected by the rules pseudonymized. The sink is
// flushed but not closed.
func (p *Pipeline) Transform(ctx context.Context, src rdf.TripleDecoder, sink rdf.TripleEncoder) (Stats, error) {
	if err := p.expect(StateIndexReady); err != nil {
		return Stats{}, err
	}
	p.state = StateTransforming
	p.logger.Info("pseudonymizing triples", "workers", max(p.options.Workers, 1), "invert", p.rules.Invert)

	start := time.Now()
	var (
		stats Stats
		err   error
	)
	if p.options.Workers > 1 {
		stats, err = p.transformBatches(ctx, src, sink)
	} else {
		stats, err = p.transformSequential(ctx, src, sink)
	}
	if err == nil {
		if flushErr := sink.Flush(); flushErr != nil {
			err = fmt.Errorf("writing output: %w", flushErr)
		}
	}
	stats.Duration = time.Since(start)
	if err != nil {
		p.logger.Error("pseudonymization failed", "triples", stats.Triples, "error", err)
		return stats, p.fail(err)
	}
	p.state = StateDone
	p.logger.Info("pseudonymization complete",
		"triples", stats.Triples,
		"transformed", stats.Transformed,
		"duration", stats.Duration,
	)
	return stats, nil
}

// Run performs both passes, calling open once per pass.
func (p *Pipeline) Run(ctx context.Context, open func() (rdf.TripleDecoder, error), sink rdf.TripleEncoder) (Stats, error) {
	first, err := open()
	if err != nil {
		return Stats{}, p.fail(err)
	}
	indexStats, err := p.BuildIndex(ctx, first)
	first.Close()
	if err != nil {
		return indexStats, err
	}

	second, err := open()
	if err != nil {
		return indexStats, p.fail(err)
	}
	defer second.Close()
	stats, err := p.Transform(ctx, second, sink)
	stats.Indexed = indexStats.Indexed
	stats.Duration += indexStats.Duration
	return stats, err
}

// process computes the mask of t and applies it. It only reads shared
// state.
func (p *Pipeline) process(t rdf.Triple) (rdf.Triple, bool) {
	mask := rules.Match(t, p.rules, p.index)
	if mask == rdf.MaskNone {
		return t, false
	}
	return p.pseudonymizer.Triple(t, mask), true
}

func (p *Pipeline) transformSequential(ctx context.Context, src rdf.TripleDecoder, sink rdf.TripleEncoder) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		t, err := src.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		stats.Triples++
		out, changed := p.process(t)
		if changed {
			stats.Transformed++
		}
		if err := sink.Write(out); err != nil {
			return stats, fmt.Errorf("writing output: %w", err)
		}
	}
}

// transformBatches reads up to BatchSize triples, splits the batch across
// the workers and writes the results in input order before reading the
// next batch.
func (p *Pipeline) transformBatches(ctx context.Context, src rdf.TripleDecoder, sink rdf.TripleEncoder) (Stats, error) {
	var stats Stats
	batch := make([]rdf.Triple, 0, p.options.BatchSize)
	changed := make([]bool, p.options.BatchSize)
	for batchNumber := 1; ; batchNumber++ {
		batch = batch[:0]
		var readErr error
		for len(batch) < p.options.BatchSize {
			if err := ctx.Err(); err != nil {
				readErr = err
				break
			}
			t, err := src.Next()
			if err != nil {
				readErr = err
				break
			}
			batch = append(batch, t)
		}

		p.processBatch(batch, changed)
		for i, t := range batch {
			stats.Triples++
			if changed[i] {
				stats.Transformed++
			}
			if err := sink.Write(t); err != nil {
				return stats, fmt.Errorf("writing output: %w", err)
			}
		}
		p.logger.Debug("batch written", "batch", batchNumber, "size", len(batch), "triples", stats.Triples)

		switch {
		case readErr == io.EOF:
			return stats, nil
		case readErr != nil:
			return stats, readErr
		}
	}
}

// processBatch transforms batch in place using contiguous slices per
// worker.
func (p *Pipeline) processBatch(batch []rdf.Triple, changed []bool) {
	if len(batch) == 0 {
		return
	}
	workers := min(p.options.Workers, len(batch))
	chunk := (len(batch) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(batch); start += chunk {
		end := min(start+chunk, len(batch))
		wg.Add(1)
		go func(part []rdf.Triple, flags []bool) {
			defer wg.Done()
			for i := range part {
				part[i], flags[i] = p.process(part[i])
			}
		}(batch[start:end], changed[start:end])
	}
	wg.Wait()
}

// BuildIndex reads src to the end and returns the type index of its
// rdf:type assertions.
func BuildIndex(ctx context.Context, src rdf.TripleDecoder) (*typeindex.Index, Stats, error) {
	start := time.Now()
	ix := typeindex.New()
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return nil, stats, err
		}
		t, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Duration = time.Since(start)
			return nil, stats, err
		}
		stats.Triples++
		if ix.Add(t) {
			stats.Indexed++
		}
	}
	stats.Duration = time.Since(start)
	return ix, stats, nil
}
