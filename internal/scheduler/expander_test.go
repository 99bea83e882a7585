package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

func TestExpandMonthRejectsInvalidPeriod(t *testing.T) {
	_, err := ExpandMonth(nil, 2026, 0, nil)
	require.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)

	_, err = ExpandMonth(nil, 2026, 13, nil)
	require.Error(t, err)
}

func TestExpandMonthEmitsOneSlotPerMatchingDay(t *testing.T) {
	svc := models.Service{
		ID:              "svc-ward",
		Name:            "Ward",
		TimeSlot:        models.SlotMorning,
		Days:            weekdays(),
		DoctorsRequired: 2,
	}

	// March 2026 starts on a Sunday: 22 weekdays.
	slots, err := ExpandMonth([]models.Service{svc}, 2026, 3, nil)
	require.NoError(t, err)
	assert.Len(t, slots, 22)
	for _, slot := range slots {
		assert.Equal(t, "svc-ward", slot.ServiceID)
		assert.Equal(t, 2, slot.Required)
		wd := slot.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestExpandMonthOrdering(t *testing.T) {
	services := []models.Service{
		{ID: "svc-theatre", Name: "Operating Theatre", TimeSlot: models.SlotMorning, Days: allDays(), DoctorsRequired: 1},
		{ID: "svc-oncall", Name: "On Call", TimeSlot: models.SlotNight, Days: allDays(), DoctorsRequired: 1},
		{ID: "svc-ward", Name: "Ward", TimeSlot: models.SlotMorning, Days: allDays(), DoctorsRequired: 1},
		{ID: "svc-delivery", Name: "Delivery Room", TimeSlot: models.SlotAfternoon, Days: allDays(), DoctorsRequired: 1},
	}

	slots, err := ExpandMonth(services, 2026, 2, nil)
	require.NoError(t, err)
	require.Len(t, slots, 4*28)

	// Within each day the department priority decides, not insertion order.
	first := slots[:4]
	assert.Equal(t, "svc-ward", first[0].ServiceID)
	assert.Equal(t, "svc-delivery", first[1].ServiceID)
	assert.Equal(t, "svc-oncall", first[2].ServiceID)
	assert.Equal(t, "svc-theatre", first[3].ServiceID)

	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].Date.Before(slots[i-1].Date), "slots must be chronological")
	}
}

func TestExpandMonthCustomDepartmentOrder(t *testing.T) {
	services := []models.Service{
		{ID: "svc-a", Name: "Ward", TimeSlot: models.SlotMorning, Days: allDays(), DoctorsRequired: 1},
		{ID: "svc-b", Name: "Emergency", TimeSlot: models.SlotMorning, Days: allDays(), DoctorsRequired: 1},
	}

	slots, err := ExpandMonth(services, 2026, 2, []string{"Emergency", "Ward"})
	require.NoError(t, err)
	assert.Equal(t, "svc-b", slots[0].ServiceID)
	assert.Equal(t, "svc-a", slots[1].ServiceID)
}

func TestExpandMonthRejectsBrokenService(t *testing.T) {
	svc := models.Service{ID: "svc-x", Name: "X", TimeSlot: "9-17", Days: allDays(), DoctorsRequired: 1}
	_, err := ExpandMonth([]models.Service{svc}, 2026, 2, nil)
	require.Error(t, err)

	svc = models.Service{ID: "svc-y", Name: "Y", TimeSlot: models.SlotMorning, Days: allDays(), DoctorsRequired: 0}
	_, err = ExpandMonth([]models.Service{svc}, 2026, 2, nil)
	require.Error(t, err)
}

// --- shared fixtures ---

func weekdays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
}

func allDays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}
