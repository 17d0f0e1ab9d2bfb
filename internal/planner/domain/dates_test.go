package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func localNoon(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

func TestNormalizeToNoon(t *testing.T) {
	late := time.Date(2024, time.March, 10, 23, 45, 12, 0, time.Local)
	assert.Equal(t, localNoon(2024, time.March, 10), NormalizeToNoon(late))

	early := time.Date(2024, time.March, 10, 0, 0, 1, 0, time.Local)
	assert.Equal(t, localNoon(2024, time.March, 10), NormalizeToNoon(early))
}

func TestAddMonthsClamped(t *testing.T) {
	jan31 := localNoon(2024, time.January, 31)

	assert.Equal(t, localNoon(2024, time.February, 29), AddMonthsClamped(jan31, 1), "leap February clamps to the 29th")
	assert.Equal(t, localNoon(2024, time.March, 31), AddMonthsClamped(jan31, 2), "March recovers the 31st, no permanent drift")
	assert.Equal(t, localNoon(2024, time.April, 30), AddMonthsClamped(jan31, 3))

	jan31NonLeap := localNoon(2023, time.January, 31)
	assert.Equal(t, localNoon(2023, time.February, 28), AddMonthsClamped(jan31NonLeap, 1))

	dec15 := localNoon(2023, time.December, 15)
	assert.Equal(t, localNoon(2024, time.January, 15), AddMonthsClamped(dec15, 1), "year rollover")

	mar31 := localNoon(2024, time.March, 31)
	assert.Equal(t, localNoon(2024, time.February, 29), AddMonthsClamped(mar31, -1), "negative steps clamp too")
	assert.Equal(t, localNoon(2023, time.December, 31), AddMonthsClamped(mar31, -3))
}

func TestAddYearsClamped(t *testing.T) {
	feb29 := localNoon(2024, time.February, 29)
	assert.Equal(t, localNoon(2025, time.February, 28), AddYearsClamped(feb29, 1))
	assert.Equal(t, localNoon(2028, time.February, 29), AddYearsClamped(feb29, 4))
}

func TestStartEndOfMonth(t *testing.T) {
	mid := localNoon(2024, time.February, 14)
	assert.Equal(t, localNoon(2024, time.February, 1), StartOfMonth(mid))
	assert.Equal(t, localNoon(2024, time.February, 29), EndOfMonth(mid))
}

func TestNthOccurrence(t *testing.T) {
	weekly := RecurrenceRule{Anchor: localNoon(2024, time.January, 1), Frequency: FrequencyWeekly}
	assert.Equal(t, localNoon(2024, time.January, 1), weekly.NthOccurrence(0))
	assert.Equal(t, localNoon(2024, time.January, 8), weekly.NthOccurrence(1))
	assert.Equal(t, localNoon(2024, time.January, 29), weekly.NthOccurrence(4))

	biweekly := RecurrenceRule{Anchor: localNoon(2024, time.January, 1), Frequency: FrequencyBiweekly}
	assert.Equal(t, localNoon(2024, time.January, 15), biweekly.NthOccurrence(1))

	monthly := RecurrenceRule{Anchor: localNoon(2024, time.January, 31), Frequency: FrequencyMonthly}
	assert.Equal(t, localNoon(2024, time.February, 29), monthly.NthOccurrence(1))
	assert.Equal(t, localNoon(2024, time.March, 31), monthly.NthOccurrence(2))

	yearly := RecurrenceRule{Anchor: localNoon(2024, time.February, 29), Frequency: FrequencyYearly}
	assert.Equal(t, localNoon(2025, time.February, 28), yearly.NthOccurrence(1))
}

func TestNormalizeFrequency(t *testing.T) {
	assert.Equal(t, FrequencyBiweekly, NormalizeFrequency("byweekly"))
	assert.Equal(t, FrequencyBiweekly, NormalizeFrequency("Bi-Weekly"))
	assert.Equal(t, FrequencyWeekly, NormalizeFrequency(" WEEKLY "))
	assert.Equal(t, Frequency(""), NormalizeFrequency("every 2nd tuesday"))
}

func TestMasterAndInstancePredicates(t *testing.T) {
	master := Transaction{ID: "a", IsRecurring: true, SeriesID: "a"}
	assert.True(t, master.IsMaster())
	assert.False(t, master.IsGeneratedInstance())

	instance := Transaction{ID: "b", IsRecurring: false, SeriesID: "a"}
	assert.False(t, instance.IsMaster())
	assert.True(t, instance.IsGeneratedInstance())

	oneOff := Transaction{ID: "c"}
	assert.False(t, oneOff.IsMaster())
	assert.False(t, oneOff.IsGeneratedInstance())
}
