package slicer

import (
	"context"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/Rohesie/wallmount-slicer/dmi"
	"github.com/Rohesie/wallmount-slicer/frames"
	"github.com/Rohesie/wallmount-slicer/layout"
)

// Outcome is the result of processing one input: either a built state, or
// the reason the input was skipped.
type Outcome struct {
	Path  string
	State *dmi.State
	Err   error
}

// Batch runs inputs through decoding, checking and assembly.
type Batch struct {
	Layout layout.Layout
	// Decoder reads inputs; frames.FileDecoder if nil.
	Decoder frames.Decoder
	// Parallelism is the number of inputs processed at once. Values below 2
	// process inputs one after the other.
	Parallelism int
}

// One processes a single input. Failures are reported in the outcome.
func (b *Batch) One(path string) Outcome {
	dec := b.Decoder
	if dec == nil {
		dec = frames.FileDecoder
	}
	set, err := dec.Decode(path)
	if err != nil {
		glog.V(1).Infof("skipping %s: %v", path, err)
		return Outcome{Path: path, Err: err}
	}
	s, err := Process(path, set, b.Layout)
	if err != nil {
		glog.V(1).Infof("skipping %s: %v", path, err)
		return Outcome{Path: path, Err: err}
	}
	glog.Infof("built icon state %q from %s", s.Name, path)
	return Outcome{Path: path, State: s}
}

// Run processes every path and returns one outcome per path, in input order.
// A failing input never stops the batch; the returned error is only set when
// ctx is done before all inputs were processed.
func (b *Batch) Run(ctx context.Context, paths []string) ([]Outcome, error) {
	out := make([]Outcome, len(paths))
	if b.Parallelism < 2 {
		for i, p := range paths {
			if err := ctx.Err(); err != nil {
				return out[:i], err
			}
			out[i] = b.One(p)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Parallelism)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = b.One(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// States returns the built states of outcomes, in order.
func States(outcomes []Outcome) []*dmi.State {
	var states []*dmi.State
	for _, o := range outcomes {
		if o.State != nil {
			states = append(states, o.State)
		}
	}
	return states
}

// Icon packs the built states of outcomes into an icon with l's cell size.
// It returns nil if no state was built.
func Icon(outcomes []Outcome, l layout.Layout) *dmi.Icon {
	states := States(outcomes)
	if len(states) == 0 {
		return nil
	}
	ic := dmi.New(int(l.XStep), int(l.YStep))
	ic.States = states
	return ic
}
