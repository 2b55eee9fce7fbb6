package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.uber.org/multierr"
)

func TestProcess(t *testing.T) {
	type args[T comparable] struct {
		ctx         context.Context
		workerCount int
		items       []T
		failOn      map[T]bool
	}
	type testCase[T comparable] struct {
		name          string
		args          args[T]
		wantErrs      int
		wantProcessed int32
		wantCanceled  bool
	}
	tests := []testCase[int]{
		{
			name: "success processes all items",
			args: args[int]{
				ctx:         context.Background(),
				workerCount: 2,
				items:       []int{1, 2, 3, 4},
			},
			wantProcessed: 10,
		},
		{
			name: "errors do not stop remaining items",
			args: args[int]{
				ctx:         context.Background(),
				workerCount: 3,
				items:       []int{1, 2, 3, 4, 5},
				failOn:      map[int]bool{2: true, 4: true},
			},
			wantErrs:      2,
			wantProcessed: 9,
		},
		{
			name: "zero workers still processes",
			args: args[int]{
				ctx:         context.Background(),
				workerCount: 0,
				items:       []int{5},
			},
			wantProcessed: 5,
		},
		{
			name: "context canceled returns canceled error",
			args: args[int]{
				ctx: func() context.Context {
					ctx, cancel := context.WithCancel(context.Background())
					cancel()
					return ctx
				}(),
				workerCount: 2,
				items:       []int{1, 2},
			},
			wantCanceled: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var processed int32
			var reported int32

			process := func(ctx context.Context, v int) error {
				if tt.args.failOn[v] {
					return errors.New("boom")
				}
				atomic.AddInt32(&processed, int32(v))
				return nil
			}
			onError := func(_ int, _ error) {
				atomic.AddInt32(&reported, 1)
			}

			err := Process(tt.args.ctx, tt.args.workerCount, tt.args.items, process, onError)

			if tt.wantCanceled {
				if !errors.Is(err, context.Canceled) {
					t.Fatalf("expected context.Canceled, got %v", err)
				}
				return
			}
			if got := len(multierr.Errors(err)); got != tt.wantErrs {
				t.Fatalf("Process() returned %d errors, want %d (%v)", got, tt.wantErrs, err)
			}
			if int(reported) != tt.wantErrs {
				t.Fatalf("onError called %d times, want %d", reported, tt.wantErrs)
			}
			if processed != tt.wantProcessed {
				t.Fatalf("expected processed sum %d, got %d", tt.wantProcessed, processed)
			}
		})
	}
}
