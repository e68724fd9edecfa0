package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func baseBooking() Booking {
	return Booking{
		ID:                "b-1",
		Reference:         "UGS-12345678-ABCD",
		Status:            StatusPending,
		ScheduledDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ScheduledTime:     "14:00",
		Duration:          90,
		EndTime:           "15:30",
		ServiceLocation:   LocationClient,
		BasePrice:         decimal.NewFromInt(100000),
		AdditionalCharges: decimal.Zero,
		Discount:          decimal.NewFromInt(5000),
		TotalAmount:       decimal.NewFromInt(95000),
		Currency:          CurrencyUGX,
		PaymentStatus:     PaymentPending,
	}
}

func TestApply_RecomputesTotalOnPriceChange(t *testing.T) {
	old := baseBooking()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	discount := decimal.NewFromInt(10000)
	got, err := apply(old, Changes{Discount: &discount}, now)

	assert.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(90000)), "total = %s", got.TotalAmount)
	// untouched inputs survive
	assert.True(t, got.BasePrice.Equal(old.BasePrice))
}

func TestApply_RecomputesEndTimeOnDurationChange(t *testing.T) {
	old := baseBooking()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	duration := 150
	got, err := apply(old, Changes{Duration: &duration}, now)

	assert.NoError(t, err)
	assert.Equal(t, "16:30", got.EndTime)
}

func TestApply_EndTimeWrapsPastMidnight(t *testing.T) {
	old := baseBooking()
	old.ScheduledTime = "23:00"
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	duration := 120
	got, err := apply(old, Changes{Duration: &duration}, now)

	assert.NoError(t, err)
	assert.Equal(t, "01:00", got.EndTime)
}

func TestApply_TerminalStatusAdmitsNoTransition(t *testing.T) {
	for _, terminal := range []Status{StatusCompleted, StatusCancelled, StatusRejected} {
		old := baseBooking()
		old.Status = terminal

		next := StatusConfirmed
		_, err := apply(old, Changes{Status: &next}, time.Now())

		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", terminal)

		var te *TransitionError
		assert.ErrorAs(t, err, &te)
		assert.Equal(t, terminal, te.From)
		assert.Equal(t, StatusConfirmed, te.To)
	}
}

func TestApply_StatusTimestampsStampedOnce(t *testing.T) {
	old := baseBooking()

	confirmedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	confirmed := StatusConfirmed
	got, err := apply(old, Changes{Status: &confirmed}, confirmedAt)
	assert.NoError(t, err)
	assert.NotNil(t, got.ConfirmedAt)
	assert.Equal(t, confirmedAt, *got.ConfirmedAt)

	// moving on to completed stamps CompletedAt but never restamps ConfirmedAt
	completedAt := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	completed := StatusCompleted
	got2, err := apply(got, Changes{Status: &completed}, completedAt)
	assert.NoError(t, err)
	assert.Equal(t, confirmedAt, *got2.ConfirmedAt)
	assert.NotNil(t, got2.CompletedAt)
	assert.Equal(t, completedAt, *got2.CompletedAt)
	assert.True(t, got2.CanReview)
}

func TestApply_FirstRescheduleCapturesOriginalSchedule(t *testing.T) {
	old := baseBooking()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	firstDate := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	firstTime := "16:00"
	actor := ActorClient
	got, err := apply(old, Changes{ScheduledDate: &firstDate, ScheduledTime: &firstTime, RescheduledBy: &actor}, now)

	assert.NoError(t, err)
	assert.Equal(t, 1, got.RescheduleCount)
	assert.NotNil(t, got.OriginalDate)
	assert.True(t, got.OriginalDate.Equal(old.ScheduledDate))
	assert.Equal(t, "14:00", *got.OriginalTime)
	assert.Equal(t, ActorClient, *got.RescheduledBy)
	assert.Equal(t, "17:30", got.EndTime)

	// a second reschedule bumps the count but leaves the originals alone
	secondDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	got2, err := apply(got, Changes{ScheduledDate: &secondDate}, now.Add(time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 2, got2.RescheduleCount)
	assert.True(t, got2.OriginalDate.Equal(old.ScheduledDate))
	assert.Equal(t, "14:00", *got2.OriginalTime)
}

func TestApply_SameScheduleIsNotAReschedule(t *testing.T) {
	old := baseBooking()

	sameDate := old.ScheduledDate
	sameTime := old.ScheduledTime
	got, err := apply(old, Changes{ScheduledDate: &sameDate, ScheduledTime: &sameTime}, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, 0, got.RescheduleCount)
	assert.Nil(t, got.OriginalDate)
}

func TestApply_RejectsBadInput(t *testing.T) {
	old := baseBooking()
	now := time.Now()

	badTime := "25:99"
	_, err := apply(old, Changes{ScheduledTime: &badTime}, now)
	assert.ErrorIs(t, err, ErrValidation)

	badDuration := 0
	_, err = apply(old, Changes{Duration: &badDuration}, now)
	assert.ErrorIs(t, err, ErrValidation)

	negative := decimal.NewFromInt(-1)
	_, err = apply(old, Changes{Discount: &negative}, now)
	assert.ErrorIs(t, err, ErrValidation)

	badStatus := Status("vanished")
	_, err = apply(old, Changes{Status: &badStatus}, now)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApply_FailedApplyLeavesOldUntouched(t *testing.T) {
	old := baseBooking()

	badDuration := -5
	discount := decimal.NewFromInt(20000)
	got, err := apply(old, Changes{Duration: &badDuration, Discount: &discount}, time.Now())

	assert.Error(t, err)
	assert.True(t, got.TotalAmount.Equal(old.TotalAmount))
	assert.Equal(t, old.Duration, got.Duration)
}
