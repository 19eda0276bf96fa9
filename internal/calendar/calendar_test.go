package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name string
		in   string
		loc  *time.Location
		want Date
	}{
		{name: "plain", in: "2024-03-15", loc: time.UTC, want: Date{2024, time.March, 15}},
		{name: "padded", in: "  2024-03-15 ", loc: time.UTC, want: Date{2024, time.March, 15}},
		{name: "timestamp utc", in: "2024-03-15T07:00:00.000Z", loc: time.UTC, want: Date{2024, time.March, 15}},
		{name: "timestamp shifted", in: "2024-03-15T20:00:00Z", loc: tokyo, want: Date{2024, time.March, 16}},
		{name: "plain ignores location", in: "2024-03-15", loc: tokyo, want: Date{2024, time.March, 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in, tt.loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "2024-13-01", "2024-02-30", "15/03/2024"} {
		_, err := ParseDate(in, time.UTC)
		assert.ErrorIs(t, err, ErrDateParse, "input %q", in)
	}
}

func TestDate_TextRoundTrip(t *testing.T) {
	d := Date{2024, time.February, 29}
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", string(b))

	var back Date
	require.NoError(t, back.UnmarshalText(b))
	assert.Equal(t, d, back)
}

func TestDate_AddMonthsClamps(t *testing.T) {
	jan31 := Date{2024, time.January, 31}

	feb := jan31.AddMonths(1)
	assert.Equal(t, Date{2024, time.February, 29}, feb)
	assert.Equal(t, Date{2024, time.January, 29}, feb.AddMonths(-1))

	assert.Equal(t, Date{2023, time.February, 28}, Date{2023, time.January, 31}.AddMonths(1))
	assert.Equal(t, Date{2023, time.December, 31}, Date{2024, time.January, 31}.AddMonths(-1))
	assert.Equal(t, Date{2025, time.February, 28}, Date{2024, time.February, 29}.AddYears(1))
}

func TestDate_StartOfWeek(t *testing.T) {
	// 2024-03-15 is a Friday.
	fri := Date{2024, time.March, 15}
	assert.Equal(t, Date{2024, time.March, 10}, fri.StartOfWeek(time.Sunday))
	assert.Equal(t, Date{2024, time.March, 11}, fri.StartOfWeek(time.Monday))
	assert.Equal(t, Date{2024, time.March, 16}, fri.EndOfWeek(time.Sunday))

	sun := Date{2024, time.March, 10}
	assert.Equal(t, sun, sun.StartOfWeek(time.Sunday))
	assert.Equal(t, Date{2024, time.March, 4}, sun.StartOfWeek(time.Monday))
}

func TestGrid_Daily(t *testing.T) {
	ref := Date{2024, time.March, 15}
	grid, err := Grid(ref, Daily, time.Sunday)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Date: ref, InMonth: true}}, grid)
}

func TestGrid_WeeklyContainsRef(t *testing.T) {
	for _, ws := range []time.Weekday{time.Sunday, time.Monday} {
		ref := Date{2023, time.December, 28}
		for range 400 {
			grid, err := Grid(ref, Weekly, ws)
			require.NoError(t, err)
			require.Len(t, grid, 7)

			assert.Equal(t, ws, grid[0].Date.Weekday())
			found := false
			for i, c := range grid {
				if i > 0 {
					assert.Equal(t, grid[i-1].Date.AddDays(1), c.Date)
				}
				if c.Date == ref {
					found = true
				}
			}
			assert.True(t, found, "week of %s does not contain it", ref)
			ref = ref.AddDays(1)
		}
	}
}

func TestGrid_MonthlyCoversMonth(t *testing.T) {
	for _, ws := range []time.Weekday{time.Sunday, time.Monday} {
		ref := Date{2023, time.January, 17}
		for range 36 {
			grid, err := Grid(ref, Monthly, ws)
			require.NoError(t, err)
			assert.Zero(t, len(grid)%7, "grid for %s has %d cells", ref, len(grid))
			assert.Equal(t, ws, grid[0].Date.Weekday())

			inMonth := 0
			for _, c := range grid {
				assert.Equal(t, c.Date.SameMonth(ref), c.InMonth)
				if c.InMonth {
					inMonth++
				}
			}
			assert.Equal(t, DaysIn(ref.Year, ref.Month), inMonth)
			ref = ref.AddMonths(1)
		}
	}
}

func TestGrid_MonthlyMarch2024(t *testing.T) {
	grid, err := Grid(Date{2024, time.March, 15}, Monthly, time.Sunday)
	require.NoError(t, err)

	// March 2024 starts on a Friday and ends on a Sunday: 6 rows.
	require.Len(t, grid, 42)
	assert.Equal(t, Cell{Date: Date{2024, time.February, 25}}, grid[0])
	assert.Equal(t, Cell{Date: Date{2024, time.March, 1}, InMonth: true}, grid[5])
	assert.Equal(t, Cell{Date: Date{2024, time.April, 6}}, grid[41])
	assert.Len(t, Weeks(grid), 6)
}

func TestGrid_Yearly(t *testing.T) {
	grid, err := Grid(Date{2024, time.August, 9}, Yearly, time.Sunday)
	require.NoError(t, err)
	require.Len(t, grid, 12)
	for i, c := range grid {
		assert.Equal(t, Date{2024, time.Month(i + 1), 1}, c.Date)
	}
}

func TestGrid_UnknownMode(t *testing.T) {
	_, err := Grid(Date{2024, time.March, 15}, ViewMode(9), time.Sunday)
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestStep(t *testing.T) {
	d := Date{2024, time.March, 15}

	tests := []struct {
		mode ViewMode
		next Date
		prev Date
	}{
		{Daily, Date{2024, time.March, 16}, Date{2024, time.March, 14}},
		{Weekly, Date{2024, time.March, 22}, Date{2024, time.March, 8}},
		{Monthly, Date{2024, time.April, 15}, Date{2024, time.February, 15}},
		{Yearly, Date{2025, time.March, 15}, Date{2023, time.March, 15}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			next, err := Step(d, tt.mode, Next)
			require.NoError(t, err)
			assert.Equal(t, tt.next, next)

			prev, err := Step(d, tt.mode, Prev)
			require.NoError(t, err)
			assert.Equal(t, tt.prev, prev)
		})
	}
}

func TestStep_ThereAndBack(t *testing.T) {
	d := Date{2023, time.December, 25}
	for range 800 {
		for _, mode := range []ViewMode{Daily, Weekly, Yearly} {
			fwd, err := Step(d, mode, Next)
			require.NoError(t, err)
			back, err := Step(fwd, mode, Prev)
			require.NoError(t, err)

			switch mode {
			case Daily, Weekly:
				assert.Equal(t, d, back)
			case Yearly:
				assert.Equal(t, d.Year, back.Year)
				assert.Equal(t, d.Month, back.Month)
			}
		}
		d = d.AddDays(1)
	}
}

func TestStep_MonthlyJan31(t *testing.T) {
	jan31 := Date{2024, time.January, 31}

	feb, err := Step(jan31, Monthly, Next)
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.February, 29}, feb)

	jan, err := Step(feb, Monthly, Prev)
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.January, 29}, jan)
}

func TestStep_YearlyLeapDay(t *testing.T) {
	next, err := Step(Date{2024, time.February, 29}, Yearly, Next)
	require.NoError(t, err)
	assert.Equal(t, Date{2025, time.February, 28}, next)
}

func TestStep_Errors(t *testing.T) {
	d := Date{2024, time.March, 15}

	got, err := Step(d, Monthly, Direction(2))
	assert.ErrorIs(t, err, ErrDirection)
	assert.Equal(t, d, got)

	got, err = Step(d, ViewMode(-1), Next)
	assert.ErrorIs(t, err, ErrUnknownView)
	assert.Equal(t, d, got)
}

func TestParseViewMode(t *testing.T) {
	for _, mode := range Modes() {
		got, err := ParseViewMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	got, err := ParseViewMode(" Month ")
	require.NoError(t, err)
	assert.Equal(t, Monthly, got)

	_, err = ParseViewMode("hourly")
	assert.True(t, errors.Is(err, ErrUnknownView))

	assert.Equal(t, "Weekly", Weekly.Title())
}

func TestLabel(t *testing.T) {
	d := Date{2024, time.March, 15}
	assert.Equal(t, "March 2024", Label(d, Monthly))
	assert.Equal(t, "March 2024", Label(d, Daily))
	assert.Equal(t, "2024", Label(d, Yearly))
}

func TestParseWeekStart(t *testing.T) {
	ws, err := ParseWeekStart("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, ws)

	_, err = ParseWeekStart("friday")
	assert.ErrorIs(t, err, ErrWeekStart)
}
