package iterate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
)

func TestTrajectoryKnownValues(t *testing.T) {
	got, err := Trajectory(maps.Logistic, 0.5, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.75, 0.5625, 0.73828125, 0.5796661376953125}, got)
}

func TestTrajectorySingleElement(t *testing.T) {
	calls := 0
	f := func(x, r float64) float64 {
		calls++
		return x
	}

	got, err := Trajectory(f, 0.42, 1, 3.9)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.42}, got)
	assert.Zero(t, calls, "length 1 must not apply the map")
}

func TestTrajectoryInvalidLength(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		_, err := Trajectory(maps.Logistic, 0.5, n, 3)
		require.ErrorIs(t, err, dynamo.ErrInvalidLength, "n=%d", n)
	}
}

func TestTrajectorySubstitutedMap(t *testing.T) {
	double := func(x, r float64) float64 { return x * r }

	got, err := Trajectory(double, 1, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 4, 8}, got)
}

func TestTrajectoryBatchMatchesScalar(t *testing.T) {
	rs := dynamo.State{0.5, 2.8, 3.3, 3.9, 4.2}

	table, err := TrajectoryBatch(maps.Logistic, 0.3, 50, rs)
	require.NoError(t, err)
	require.Equal(t, 50, table.NumRows())
	require.Equal(t, len(rs), table.NumCols())
	assert.Equal(t, 0, table.Start)

	for k, r := range rs {
		want, err := Trajectory(maps.Logistic, 0.3, 50, r)
		require.NoError(t, err)
		assert.Equal(t, want, table.Column(k), "lane r=%v", r)
	}
}

func TestTrajectoryBatchErrors(t *testing.T) {
	_, err := TrajectoryBatch(maps.Logistic, 0.5, 0, dynamo.State{3})
	require.ErrorIs(t, err, dynamo.ErrInvalidLength)

	_, err = TrajectoryBatch(maps.Logistic, 0.5, 10, nil)
	require.ErrorIs(t, err, dynamo.ErrShapeMismatch)
}

func TestSweepShape(t *testing.T) {
	rs, err := LinearRange(2.5, 4, 37)
	require.NoError(t, err)

	for _, tc := range []struct{ discard, retain int }{{0, 1}, {0, 7}, {10, 1}, {100, 25}} {
		table, err := Sweep(maps.Logistic, 0.5, tc.discard, tc.retain, rs)
		require.NoError(t, err)
		assert.Equal(t, len(rs), table.NumCols())
		assert.Equal(t, tc.retain, table.NumRows())
		assert.Equal(t, tc.discard+1, table.Start)
	}
}

func TestSweepFirstStep(t *testing.T) {
	for _, r := range []float64{0, 1.5, 3, 3.7, 4} {
		table, err := Sweep(maps.Logistic, 0.2, 0, 1, dynamo.State{r})
		require.NoError(t, err)
		assert.Equal(t, maps.Logistic(0.2, r), table.At(0, 0))
	}
}

func TestSweepRecordsTail(t *testing.T) {
	rs := dynamo.State{2.9, 3.5, 3.83}
	discard, retain := 40, 12

	table, err := Sweep(maps.Logistic, 0.5, discard, retain, rs)
	require.NoError(t, err)

	for k, r := range rs {
		orbit, err := Trajectory(maps.Logistic, 0.5, discard+retain+1, r)
		require.NoError(t, err)
		assert.Equal(t, orbit[discard+1:], table.Column(k))
	}
}

func TestSweepPeriodTwo(t *testing.T) {
	table, err := Sweep(maps.Logistic, 0.5, 2000, 4, dynamo.State{3.2})
	require.NoError(t, err)

	col := table.Column(0)
	assert.InDelta(t, col[0], col[2], 1e-9)
	assert.InDelta(t, col[1], col[3], 1e-9)
	assert.Greater(t, math.Abs(col[0]-col[1]), 0.1)
}

func TestSweepErrors(t *testing.T) {
	rs := dynamo.State{3}

	_, err := Sweep(maps.Logistic, 0.5, 10, 0, rs)
	require.ErrorIs(t, err, dynamo.ErrInvalidLength)

	_, err = Sweep(maps.Logistic, 0.5, 10, -3, rs)
	require.ErrorIs(t, err, dynamo.ErrInvalidLength)

	_, err = Sweep(maps.Logistic, 0.5, -1, 5, rs)
	require.ErrorIs(t, err, dynamo.ErrInvalidLength)

	_, err = Sweep(maps.Logistic, 0.5, 10, 5, dynamo.State{})
	require.ErrorIs(t, err, dynamo.ErrShapeMismatch)

	var overflow *dynamo.ArgumentError
	_, err = Sweep(maps.Logistic, 0.5, math.MaxInt, 1, rs)
	require.ErrorIs(t, err, dynamo.ErrInvalidLength)
	require.True(t, errors.As(err, &overflow))
	assert.Equal(t, "discard", overflow.Arg)

	_, err = Sweep(maps.Logistic, 0.5, math.MaxInt-5, 6, rs)
	require.ErrorIs(t, err, dynamo.ErrInvalidLength)

	var argErr *dynamo.ArgumentError
	_, err = Sweep(maps.Logistic, 0.5, 10, 0, rs)
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "retain", argErr.Arg)
}

func TestSweepWorkersBitIdentical(t *testing.T) {
	rs, err := LinearRange(0, 4, 2049)
	require.NoError(t, err)

	serial, err := Sweep(maps.Logistic, 0.5, 300, 50, rs)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 7} {
		parallel, err := Sweep(maps.Logistic, 0.5, 300, 50, rs, WithWorkers(workers), WithMinLanes(16))
		require.NoError(t, err)
		for i := 0; i < serial.NumRows(); i++ {
			assert.Equal(t, serial.Row(i), parallel.Row(i), "workers=%d row=%d", workers, i)
		}
	}
}

func TestSweepPreservesDivergence(t *testing.T) {
	table, err := Sweep(maps.Logistic, 0.5, 50, 3, dynamo.State{10})
	require.NoError(t, err)

	for _, v := range table.Column(0) {
		assert.True(t, math.IsInf(v, -1) || math.IsNaN(v), "expected divergence, got %v", v)
	}
}

func TestLinearRange(t *testing.T) {
	got, err := LinearRange(0, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, dynamo.State{0}, got)

	got, err = LinearRange(0, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, dynamo.State{0, 1, 2, 3, 4}, got)

	got, err = LinearRange(0, 4.5, 100)
	require.NoError(t, err)
	assert.Len(t, got, 100)
	assert.Equal(t, 4.5, got[99])

	got, err = LinearRange(1, -1, 3)
	require.NoError(t, err)
	assert.Equal(t, dynamo.State{1, 0, -1}, got)
}

func TestLinearRangeInvalidCount(t *testing.T) {
	for _, n := range []int{0, -5} {
		_, err := LinearRange(0, 4, n)
		require.ErrorIs(t, err, dynamo.ErrInvalidRangeCount)
	}
}

func TestTablePoints(t *testing.T) {
	table, err := Sweep(maps.Logistic, 0.5, 0, 2, dynamo.State{1, 2})
	require.NoError(t, err)

	pts := table.Points()
	require.Len(t, pts, 4)
	assert.Equal(t, Point{R: 1, Index: 0, X: 0.25}, pts[0])
	assert.Equal(t, Point{R: 2, Index: 0, X: 0.5}, pts[1])
	assert.Equal(t, 1, pts[2].Index)
	assert.Equal(t, table.At(1, 1), pts[3].X)
}

func TestNewTableRoundTrip(t *testing.T) {
	rs := dynamo.State{2.5, 3.2}
	table, err := Sweep(maps.Logistic, 0.5, 10, 4, rs)
	require.NoError(t, err)

	rows := make([][]float64, table.NumRows())
	for i := range rows {
		rows[i] = table.Row(i)
	}
	rebuilt, err := NewTable(table.Params, table.Start, rows)
	require.NoError(t, err)
	assert.Equal(t, table.Points(), rebuilt.Points())
	assert.Equal(t, table.Start, rebuilt.Start)

	_, err = NewTable(rs, 0, [][]float64{{1}})
	assert.ErrorIs(t, err, dynamo.ErrShapeMismatch)
	_, err = NewTable(nil, 0, nil)
	assert.ErrorIs(t, err, dynamo.ErrShapeMismatch)
}
