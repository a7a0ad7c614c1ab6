package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewCalendar(t *testing.T) {
	t.Run("accepts cutover days 2 through 28", func(t *testing.T) {
		for day := 2; day <= 28; day++ {
			_, err := NewCalendar(day, time.UTC)
			assert.NoError(t, err, "day %d", day)
		}
	})

	t.Run("rejects cutover days outside 2..28", func(t *testing.T) {
		for _, day := range []int{0, 1, 29, 31, -5} {
			_, err := NewCalendar(day, time.UTC)
			assert.Error(t, err, "day %d", day)
		}
	})

	t.Run("nil location defaults to UTC", func(t *testing.T) {
		cal, err := NewCalendar(26, nil)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, cal.Location())
	})
}

func TestResolvePeriod(t *testing.T) {
	cal := MustNewCalendar(26, time.UTC)

	t.Run("day before cutover belongs to period ending this month", func(t *testing.T) {
		p := cal.ResolvePeriod(date(2024, time.February, 25))

		assert.Equal(t, date(2024, time.January, 26), p.Start)
		assert.Equal(t, time.Date(2024, time.February, 25, 23, 59, 59, 0, time.UTC), p.End)
		assert.Equal(t, "2024-02", p.Label)
	})

	t.Run("cutover day starts the period ending next month", func(t *testing.T) {
		p := cal.ResolvePeriod(date(2024, time.February, 26))

		assert.Equal(t, date(2024, time.February, 26), p.Start)
		assert.Equal(t, time.Date(2024, time.March, 25, 23, 59, 59, 0, time.UTC), p.End)
		assert.Equal(t, "2024-03", p.Label)
	})

	t.Run("mid-period date resolves like the boundary dates", func(t *testing.T) {
		assert.Equal(t, "2024-02", cal.ResolvePeriod(date(2024, time.February, 10)).Label)
		assert.Equal(t, "2024-02", cal.ResolvePeriod(date(2024, time.January, 31)).Label)
	})

	t.Run("year boundary", func(t *testing.T) {
		p := cal.ResolvePeriod(date(2023, time.December, 28))

		assert.Equal(t, date(2023, time.December, 26), p.Start)
		assert.Equal(t, time.Date(2024, time.January, 25, 23, 59, 59, 0, time.UTC), p.End)
		assert.Equal(t, "2024-01", p.Label)
	})

	t.Run("leap February keeps the cutover boundary", func(t *testing.T) {
		p := cal.ResolvePeriod(date(2024, time.February, 29))

		assert.Equal(t, date(2024, time.February, 26), p.Start)
		assert.Equal(t, "2024-03", p.Label)
	})

	t.Run("every date resolves to exactly one containing period", func(t *testing.T) {
		d := date(2024, time.January, 1)
		for d.Before(date(2025, time.January, 1)) {
			p := cal.ResolvePeriod(d)
			assert.True(t, p.Contains(d), "date %s not in resolved period %s", d, p.Label)
			d = d.AddDate(0, 0, 1)
		}
	})
}

func TestPeriodAdjacency(t *testing.T) {
	cal := MustNewCalendar(26, time.UTC)

	t.Run("previous period ends one second before current starts", func(t *testing.T) {
		p := cal.ResolvePeriod(date(2024, time.February, 10))
		prev := cal.PreviousPeriod(p)

		assert.Equal(t, "2024-01", prev.Label)
		assert.Equal(t, p.Start.Add(-time.Second), prev.End)
	})

	t.Run("adjacency holds across a full year including December to January", func(t *testing.T) {
		p := cal.ResolvePeriod(date(2023, time.June, 1))
		for i := 0; i < 12; i++ {
			next := cal.NextPeriod(p)
			assert.Equal(t, p.End.Add(time.Second), next.Start,
				"gap between %s and %s", p.Label, next.Label)
			p = next
		}
		assert.Equal(t, "2024-06", p.Label)
	})

	t.Run("previous then next is identity", func(t *testing.T) {
		p := cal.ResolvePeriod(date(2024, time.March, 5))
		back := cal.NextPeriod(cal.PreviousPeriod(p))

		assert.Equal(t, p, back)
	})
}

func TestPeriodContains(t *testing.T) {
	cal := MustNewCalendar(26, time.UTC)
	p := cal.ResolvePeriod(date(2024, time.February, 10))

	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(p.End))
	assert.False(t, p.Contains(p.Start.Add(-time.Second)))
	assert.False(t, p.Contains(p.End.Add(time.Second)))
}

func TestCalendarWithDifferentCutover(t *testing.T) {
	cal := MustNewCalendar(15, time.UTC)

	p := cal.ResolvePeriod(date(2024, time.March, 14))
	assert.Equal(t, date(2024, time.February, 15), p.Start)
	assert.Equal(t, time.Date(2024, time.March, 14, 23, 59, 59, 0, time.UTC), p.End)
	assert.Equal(t, "2024-03", p.Label)

	p = cal.ResolvePeriod(date(2024, time.March, 15))
	assert.Equal(t, "2024-04", p.Label)
}

func TestCalendarLocation(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	cal := MustNewCalendar(26, shanghai)

	// 2024-02-25 16:30 UTC is already the 26th in Shanghai
	d := time.Date(2024, time.February, 25, 16, 30, 0, 0, time.UTC)
	p := cal.ResolvePeriod(d)

	assert.Equal(t, "2024-03", p.Label)
	assert.Equal(t, shanghai, p.Start.Location())
}
