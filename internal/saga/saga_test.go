package saga

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func step(name string, runErr error, trace *[]string) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) error {
			if runErr != nil {
				return runErr
			}
			*trace = append(*trace, "run:"+name)
			return nil
		},
		Compensate: func(ctx context.Context) error {
			*trace = append(*trace, "undo:"+name)
			return nil
		},
	}
}

func TestRunAllStepsSucceed(t *testing.T) {
	var trace []string
	err := Run(context.Background(), "test", []Step{
		step("a", nil, &trace),
		step("b", nil, &trace),
		step("c", nil, &trace),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"run:a", "run:b", "run:c"}, trace)
}

func TestRunCompensatesInReverseOrder(t *testing.T) {
	var trace []string
	boom := errors.New("step c failed")
	err := Run(context.Background(), "test", []Step{
		step("a", nil, &trace),
		step("b", nil, &trace),
		step("c", boom, &trace),
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"run:a", "run:b", "undo:b", "undo:a"}, trace)
}

func TestRunFirstStepFailureNeedsNoCompensation(t *testing.T) {
	var trace []string
	boom := errors.New("step a failed")
	err := Run(context.Background(), "test", []Step{
		step("a", boom, &trace),
		step("b", nil, &trace),
	})
	require.ErrorIs(t, err, boom)
	require.Empty(t, trace)
}

func TestRunAbortsForwardSequenceOnFailure(t *testing.T) {
	var trace []string
	boom := errors.New("step b failed")
	err := Run(context.Background(), "test", []Step{
		step("a", nil, &trace),
		step("b", boom, &trace),
		step("c", nil, &trace),
	})
	require.ErrorIs(t, err, boom)
	require.NotContains(t, trace, "run:c")
}

func TestRunNilCompensationSkipped(t *testing.T) {
	var trace []string
	boom := errors.New("last step failed")
	err := Run(context.Background(), "test", []Step{
		step("a", nil, &trace),
		{
			Name: "terminal",
			Run: func(ctx context.Context) error {
				return boom
			},
			// No compensation for the terminal step.
		},
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"run:a", "undo:a"}, trace)
}

func TestRunContinuesPastFailedCompensation(t *testing.T) {
	var trace []string
	steps := []Step{
		step("a", nil, &trace),
		{
			Name: "b",
			Run: func(ctx context.Context) error {
				trace = append(trace, "run:b")
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return errors.New("undo b failed")
			},
		},
		step("c", errors.New("step c failed"), &trace),
	}
	err := Run(context.Background(), "test", steps)
	require.Error(t, err)
	// a's compensation still runs even though b's failed.
	require.Equal(t, []string{"run:a", "run:b", "undo:a"}, trace)
}
