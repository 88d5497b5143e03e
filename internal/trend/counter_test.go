// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/internal/httputil"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

type reply struct {
	n   int
	err error
}

// fakeBackend replays scripted replies per year; once a year's script is
// exhausted it keeps returning the last reply.
type fakeBackend struct {
	script map[int][]reply
	calls  map[int]int
	order  []int
	terms  []string
}

func newFakeBackend(script map[int][]reply) *fakeBackend {
	return &fakeBackend{script: script, calls: map[int]int{}}
}

func (f *fakeBackend) Count(_ context.Context, term string, year int) (int, error) {
	f.order = append(f.order, year)
	f.terms = append(f.terms, term)
	replies := f.script[year]
	i := f.calls[year]
	f.calls[year]++
	if len(replies) == 0 {
		return 0, nil
	}
	if i >= len(replies) {
		i = len(replies) - 1
	}
	return replies[i].n, replies[i].err
}

type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

type countingPacer struct{ pauses int }

func (p *countingPacer) Pause(ctx context.Context) error {
	p.pauses++
	return ctx.Err()
}

type fakeRecorder struct {
	outcomes  map[string]int
	coolDowns int
	years     []types.YearCount
}

func (r *fakeRecorder) ObserveRequest(outcome string) {
	if r.outcomes == nil {
		r.outcomes = map[string]int{}
	}
	r.outcomes[outcome]++
}

func (r *fakeRecorder) ObserveCoolDown() { r.coolDowns++ }

func (r *fakeRecorder) ObserveYear(year, count int, failed bool) {
	r.years = append(r.years, types.YearCount{Year: year, Count: count, Failed: failed})
}

var (
	errBoom     = errors.New("connection refused")
	errLimited  = &httputil.StatusError{StatusCode: http.StatusTooManyRequests}
	testNow     = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	testCounter = types.DefaultCounterConfig()
)

func mustQuery(t *testing.T, term string, start, end int) types.Query {
	t.Helper()
	q, err := types.NewQuery(term, start, end, testNow)
	require.NoError(t, err)
	return q
}

func newTestCounter(b Backend, s *recordingSleeper, p Pacer, opts ...Option) *Counter {
	all := append([]Option{WithSleeper(s), WithPacer(p)}, opts...)
	return NewCounter(b, testCounter, all...)
}

func TestCountByYear_AllSucceed(t *testing.T) {
	b := newFakeBackend(map[int][]reply{
		2020: {{n: 10}},
		2021: {{n: 25}},
		2022: {{n: 5}},
	})
	s := &recordingSleeper{}
	p := &countingPacer{}

	got, err := newTestCounter(b, s, p).CountByYear(context.Background(), mustQuery(t, "test", 2020, 2022))
	require.NoError(t, err)

	assert.Equal(t, []types.YearCount{
		{Year: 2020, Count: 10},
		{Year: 2021, Count: 25},
		{Year: 2022, Count: 5},
	}, got)
	assert.Equal(t, []int{2020, 2021, 2022}, b.order)
	assert.Equal(t, []string{"test", "test", "test"}, b.terms)
	assert.Empty(t, s.waits)
	// Pauses only between consecutive years.
	assert.Equal(t, 2, p.pauses)

	sum := Summarize(got)
	assert.Equal(t, 40, sum.Total)
	assert.InDelta(t, 13.33, sum.Average, 0.005)
	assert.Equal(t, &types.YearCount{Year: 2021, Count: 25}, sum.Peak)
}

func TestCountByYear_LengthOrderNoGaps(t *testing.T) {
	ranges := [][2]int{{1800, 1800}, {1990, 2000}, {2019, 2027}}
	for _, r := range ranges {
		b := newFakeBackend(nil)
		got, err := newTestCounter(b, &recordingSleeper{}, NoPause{}).
			CountByYear(context.Background(), mustQuery(t, "x", r[0], r[1]))
		require.NoError(t, err)
		require.Len(t, got, r[1]-r[0]+1)
		for i, yc := range got {
			assert.Equal(t, r[0]+i, yc.Year)
		}
	}
}

func TestCountByYear_FailedYearRecordedAsZero(t *testing.T) {
	b := newFakeBackend(map[int][]reply{
		2020: {{n: 7}},
		2021: {{err: errBoom}},
		2022: {{n: 3}},
	})
	s := &recordingSleeper{}
	rec := &fakeRecorder{}
	var progress bytes.Buffer

	got, err := newTestCounter(b, s, NoPause{},
		WithRecorder(rec),
		WithObserver(ProgressWriter{W: &progress}),
	).CountByYear(context.Background(), mustQuery(t, "test", 2020, 2022))
	require.NoError(t, err)

	assert.Equal(t, []types.YearCount{
		{Year: 2020, Count: 7},
		{Year: 2021, Count: 0, Failed: true},
		{Year: 2022, Count: 3},
	}, got)
	assert.Equal(t, 3, b.calls[2021])
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, s.waits)

	assert.Equal(t, 2, rec.outcomes[OutcomeSuccess])
	assert.Equal(t, 3, rec.outcomes[OutcomeError])
	assert.Equal(t, got, rec.years)

	out := progress.String()
	assert.Contains(t, out, "Retrying 2021 (attempt 2/3)")
	assert.Contains(t, out, "Retrying 2021 (attempt 3/3)")
	assert.Contains(t, out, "Could not get results for 2021 after 3 attempts")
	assert.Contains(t, out, "Found 3 papers in 2022")
}

func TestCountByYear_RetryThenSuccess(t *testing.T) {
	b := newFakeBackend(map[int][]reply{
		2020: {{err: errBoom}, {err: errBoom}, {n: 12}},
	})
	s := &recordingSleeper{}

	got, err := newTestCounter(b, s, NoPause{}).CountByYear(context.Background(), mustQuery(t, "t", 2020, 2020))
	require.NoError(t, err)
	assert.Equal(t, []types.YearCount{{Year: 2020, Count: 12}}, got)
	assert.Len(t, s.waits, 2)
}

func TestCountByYear_RateLimitThenSuccess(t *testing.T) {
	b := newFakeBackend(map[int][]reply{
		2020: {{err: errLimited}, {n: 99}},
	})
	s := &recordingSleeper{}
	rec := &fakeRecorder{}

	got, err := newTestCounter(b, s, NoPause{}, WithRecorder(rec)).
		CountByYear(context.Background(), mustQuery(t, "t", 2020, 2020))
	require.NoError(t, err)
	assert.Equal(t, []types.YearCount{{Year: 2020, Count: 99}}, got)
	assert.Equal(t, []time.Duration{60 * time.Second}, s.waits)
	assert.Equal(t, 1, rec.coolDowns)
	assert.Equal(t, 1, rec.outcomes[OutcomeRateLimited])
}

func TestCountByYear_RateLimitKeepsAttemptBudget(t *testing.T) {
	b := newFakeBackend(map[int][]reply{
		2020: {{err: errBoom}, {err: errLimited}, {err: errBoom}, {err: errLimited}, {n: 4}},
	})

	got, err := newTestCounter(b, &recordingSleeper{}, NoPause{}).
		CountByYear(context.Background(), mustQuery(t, "t", 2020, 2020))
	require.NoError(t, err)
	assert.Equal(t, []types.YearCount{{Year: 2020, Count: 4}}, got)
	assert.Equal(t, 5, b.calls[2020])
}

func TestCountByYear_PersistentRateLimitIsBounded(t *testing.T) {
	b := newFakeBackend(map[int][]reply{
		2020: {{err: errLimited}},
		2021: {{n: 1}},
	})
	s := &recordingSleeper{}

	got, err := newTestCounter(b, s, NoPause{}).CountByYear(context.Background(), mustQuery(t, "t", 2020, 2021))
	require.NoError(t, err)
	assert.Equal(t, []types.YearCount{
		{Year: 2020, Count: 0, Failed: true},
		{Year: 2021, Count: 1},
	}, got)
	assert.Len(t, s.waits, testCounter.MaxCoolDowns)
}

func TestCountByYear_InterruptedDuringPause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := newFakeBackend(map[int][]reply{2020: {{n: 1}}})
	p := pacerFunc(func(context.Context) error {
		cancel()
		return ctx.Err()
	})

	got, err := newTestCounter(b, &recordingSleeper{}, p).CountByYear(ctx, mustQuery(t, "t", 2020, 2022))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperr.ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{2020}, b.order)
}

func TestCountByYear_InterruptedDuringRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := newFakeBackend(map[int][]reply{2020: {{err: errBoom}}})
	s := sleeperFunc(func(context.Context, time.Duration) error {
		cancel()
		return ctx.Err()
	})

	c := NewCounter(b, testCounter, WithSleeper(s), WithPacer(NoPause{}))
	_, err := c.CountByYear(ctx, mustQuery(t, "t", 2020, 2020))
	assert.ErrorIs(t, err, apperr.ErrInterrupted)
	assert.Equal(t, apperr.ExitInterrupted, apperr.ExitCode(err))
}

func TestCountByYear_DefaultPacerUsesSleeper(t *testing.T) {
	b := newFakeBackend(nil)
	s := &recordingSleeper{}

	c := NewCounter(b, testCounter, WithSleeper(s))
	_, err := c.CountByYear(context.Background(), mustQuery(t, "t", 2000, 2003))
	require.NoError(t, err)
	require.Len(t, s.waits, 3)
	for _, w := range s.waits {
		assert.GreaterOrEqual(t, w, 2*time.Second)
		assert.LessOrEqual(t, w, 3*time.Second)
	}
}

type pacerFunc func(context.Context) error

func (f pacerFunc) Pause(ctx context.Context) error { return f(ctx) }

type sleeperFunc func(context.Context, time.Duration) error

func (f sleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }
