package recurrence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"BoletoReport/boletos/cleaning"
	"BoletoReport/boletos/status"
)

func open(month, personID, amount string) cleaning.Record {
	amt, _ := decimal.NewFromString(amount)
	return cleaning.Record{
		Bank:           "B1",
		ReferenceMonth: month,
		PersonID:       personID,
		Amount:         amt,
		AmountValid:    true,
		IsValid:        true,
		StatusClass:    status.CategoryOpen,
	}
}

func TestComputeRecurrence(t *testing.T) {
	t.Parallel()

	records := []cleaning.Record{
		open("2025-09", "1|A", "100.00"),
		open("2025-09", "1|A", "50.00"), // same month, same person
		open("2025-10", "1|A", "30.00"),
		open("2025-09", "2|B", "10.00"),
	}

	table := Compute(records)
	require.Len(t, table, 2)

	a := table[0] // 3 bills, ordered first
	require.Equal(t, "1|A", a.PersonID)
	require.Equal(t, 2, a.MonthCount, "two bills in one month still count as one month")
	require.Equal(t, []string{"2025-09", "2025-10"}, a.Months)
	require.Equal(t, "180", a.TotalOpen.String())
	require.Equal(t, 3, a.BillCount)
	require.True(t, a.Reincident)

	b := table[1]
	require.Equal(t, "2|B", b.PersonID)
	require.Equal(t, 1, b.MonthCount)
	require.False(t, b.Reincident, "single-month debtors stay in the table but are not reincident")
}

func TestComputeByMonth(t *testing.T) {
	t.Parallel()

	records := []cleaning.Record{
		open("2025-08", "1|A", "10.00"),
		open("2025-09", "1|A", "10.00"),
		open("2025-09", "2|B", "10.00"),
		open("2025-11", "2|B", "10.00"), // 2025-10 absent entirely
	}

	byMonth := ComputeByMonth(records)
	require.Len(t, byMonth, 3, "genuinely absent months are skipped, not synthesized")

	require.Equal(t, "2025-08", byMonth[0].Month)
	require.Equal(t, 1, byMonth[0].NewDebtors)
	require.Equal(t, 0, byMonth[0].RepeatDebtors)

	require.Equal(t, "2025-09", byMonth[1].Month)
	require.Equal(t, 1, byMonth[1].NewDebtors)
	require.Equal(t, 1, byMonth[1].RepeatDebtors)
	require.InDelta(t, 50.0, byMonth[1].PctRepeat, 1e-9)

	require.Equal(t, "2025-11", byMonth[2].Month)
	require.Equal(t, 0, byMonth[2].NewDebtors)
	require.Equal(t, 1, byMonth[2].RepeatDebtors)
}

func TestComputeChanges(t *testing.T) {
	t.Parallel()

	records := []cleaning.Record{
		open("2025-09", "1|A", "100.00"),
		open("2025-10", "1|A", "250.00"), // worsened by 150
		open("2025-09", "2|B", "80.00"),  // absent in October: resolved, -80
		open("2025-10", "3|C", "60.00"),  // newly appeared: +60
	}

	changes := ComputeChanges(records)
	require.Len(t, changes, 3)

	byPerson := map[string]Change{}
	for _, c := range changes {
		byPerson[c.PersonID] = c
	}

	require.Equal(t, "150", byPerson["1|A"].Delta.String())
	require.InDelta(t, 150.0, byPerson["1|A"].PctDelta, 1e-9)

	require.Equal(t, "-80", byPerson["2|B"].Delta.String())
	require.True(t, byPerson["2|B"].Amount.IsZero())

	require.Equal(t, "60", byPerson["3|C"].Delta.String())
	require.True(t, byPerson["3|C"].PrevAmount.IsZero())
	require.Equal(t, 0.0, byPerson["3|C"].PctDelta, "no percentage without a previous balance")
}

func TestComputeChangesSkipsGapMonths(t *testing.T) {
	t.Parallel()

	// 2025-10 has no rows at all: adjacency pairs 09->11, never 09->10.
	records := []cleaning.Record{
		open("2025-09", "1|A", "100.00"),
		open("2025-11", "1|A", "130.00"),
	}

	changes := ComputeChanges(records)
	require.Len(t, changes, 1)
	require.Equal(t, "2025-09", changes[0].PrevMonth)
	require.Equal(t, "2025-11", changes[0].Month)
	require.Equal(t, "30", changes[0].Delta.String())
}

func TestTopWorsenedAndImproved(t *testing.T) {
	t.Parallel()

	records := []cleaning.Record{
		open("2025-09", "1|A", "100.00"),
		open("2025-10", "1|A", "400.00"), // +300
		open("2025-09", "2|B", "500.00"),
		open("2025-10", "2|B", "100.00"), // -400
		open("2025-09", "3|C", "50.00"),
		open("2025-10", "3|C", "60.00"), // +10
	}

	changes := ComputeChanges(records)

	worsened := TopWorsened(changes, 2)
	require.Len(t, worsened, 2)
	require.Equal(t, "1|A", worsened[0].PersonID)
	require.Equal(t, "3|C", worsened[1].PersonID)

	improved := TopImproved(changes, 1)
	require.Len(t, improved, 1)
	require.Equal(t, "2|B", improved[0].PersonID)
	require.Equal(t, "-400", improved[0].Delta.String())
}
