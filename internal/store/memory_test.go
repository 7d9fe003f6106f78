package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	e, err := solver.New([]string{"crane", "crate"})
	require.NoError(t, err)
	s := NewSession(e)
	require.NotEmpty(t, s.ID)

	require.NoError(t, st.Save(ctx, s))
	require.Equal(t, 1, st.Len())

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, st.Delete(ctx, s.ID), ErrNotFound)
}

func TestSessionDoSerializes(t *testing.T) {
	e, err := solver.New([]string{"crane", "crate", "slate"})
	require.NoError(t, err)
	s := NewSession(e)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Do(func(e *solver.Engine) {
				if i%2 == 0 {
					e.Solve(solver.SolveParams{Confirmed: "cra__"})
				} else {
					e.Solve(solver.SolveParams{Absent: "n"})
				}
			})
		}(i)
	}
	wg.Wait()

	s.Do(func(e *solver.Engine) {
		require.Equal(t, []string{"crate"}, e.Candidates())
	})
}
