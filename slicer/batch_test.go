package slicer

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/Rohesie/wallmount-slicer/dmi"
	"github.com/Rohesie/wallmount-slicer/frames"
	"github.com/Rohesie/wallmount-slicer/ttesting"
)

// fakeDecoder serves frame sets from memory, and errors for unknown paths.
type fakeDecoder map[string]*frames.Set

func (f fakeDecoder) Decode(path string) (*frames.Set, error) {
	if _, err := frames.FormatFromPath(path); err != nil {
		return nil, err
	}
	if path == "empty.gif" {
		return frames.Animated(nil)
	}
	s, ok := f[path]
	if !ok {
		return nil, errors.Wrapf(frames.ErrDecode, "opening %s", path)
	}
	return s, nil
}

func testBatch(t *testing.T, parallelism int) *Batch {
	return &Batch{
		Layout: strip,
		Decoder: fakeDecoder{
			"in/wall.png":  frames.Static(stripSheet(ttesting.White)),
			"in/small.png": frames.Static(ttesting.Fill(48, 32, ttesting.Red)),
			"in/anim.gif":  animatedSet(t, 100*time.Millisecond, 200*time.Millisecond, 300*time.Millisecond),
		},
		Parallelism: parallelism,
	}
}

var batchPaths = []string{
	"in/wall.png",
	"in/small.png",
	"empty.gif",
	"notes.txt",
	"in/missing.png",
	"in/anim.gif",
}

func TestBatchRun(t *testing.T) {
	for _, parallelism := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("parallelism %d", parallelism), func(t *testing.T) {
			outcomes, err := testBatch(t, parallelism).Run(context.Background(), batchPaths)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if len(outcomes) != len(batchPaths) {
				t.Fatalf("got %d outcomes; want %d", len(outcomes), len(batchPaths))
			}
			for i, o := range outcomes {
				ttesting.AssertEqualString(t, fmt.Sprintf("outcome %d path", i), o.Path, batchPaths[i])
			}

			wantErrs := []error{nil, ErrDimensionMismatch, frames.ErrEmptyAnimation, frames.ErrUnsupportedFormat, frames.ErrDecode, nil}
			for i, want := range wantErrs {
				o := outcomes[i]
				if want == nil {
					if o.Err != nil || o.State == nil {
						t.Errorf("%s: got %v, %v; want a state", o.Path, o.State, o.Err)
					}
					continue
				}
				if !errors.Is(o.Err, want) || o.State != nil {
					t.Errorf("%s: got %v; want %v", o.Path, o.Err, want)
				}
			}

			states := States(outcomes)
			ttesting.AssertEqualInt(t, "states", len(states), 2)
			ttesting.AssertEqualString(t, "first state", states[0].Name, "wall")
			ttesting.AssertEqualString(t, "second state", states[1].Name, "anim")
			ttesting.AssertEqualInt(t, "second state images", len(states[1].Images), 12)
		})
	}
}

func TestBatchIcon(t *testing.T) {
	b := testBatch(t, 0)
	outcomes, err := b.Run(context.Background(), batchPaths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	ic := Icon(outcomes, b.Layout)
	if ic == nil {
		t.Fatalf("Icon returned nil")
	}
	ttesting.AssertEqualInt(t, "width", ic.Width, 16)
	ttesting.AssertEqualInt(t, "height", ic.Height, 32)
	ttesting.AssertEqualInt(t, "states", len(ic.States), 2)

	outcomes, err = b.Run(context.Background(), []string{"in/small.png", "empty.gif"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ic := Icon(outcomes, b.Layout); ic != nil {
		t.Errorf("Icon of failed outcomes: got %+v; want nil", ic)
	}
}

func TestBatchInvalidName(t *testing.T) {
	b := &Batch{
		Layout: strip,
		Decoder: fakeDecoder{
			"in/wall.png": frames.Static(stripSheet(ttesting.White)),
			"in/灯.png":    frames.Static(stripSheet(ttesting.Red)),
		},
	}
	outcomes, err := b.Run(context.Background(), []string{"in/wall.png", "in/灯.png"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcomes[0].Err != nil {
		t.Errorf("in/wall.png: %v", outcomes[0].Err)
	}
	if !errors.Is(outcomes[1].Err, dmi.ErrInvalidName) || outcomes[1].State != nil {
		t.Errorf("in/灯.png: got %v; want %v", outcomes[1].Err, dmi.ErrInvalidName)
	}

	ic := Icon(outcomes, b.Layout)
	if ic == nil {
		t.Fatalf("Icon returned nil")
	}
	ttesting.AssertEqualInt(t, "states", len(ic.States), 1)
	if err := ic.Encode(&bytes.Buffer{}); err != nil {
		t.Errorf("Encode: %v", err)
	}
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, parallelism := range []int{0, 4} {
		if _, err := testBatch(t, parallelism).Run(ctx, batchPaths); !errors.Is(err, context.Canceled) {
			t.Errorf("parallelism %d: got %v; want %v", parallelism, err, context.Canceled)
		}
	}
}
