package catalog

import (
	"fmt"
	"time"
)

// Timeslot is one bookable one-hour interval of the daily grid. The grid is
// the same for every date; slots are identified by their "HH:MM-HH:MM" range.
type Timeslot struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Court struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PricePerHour float64 `json:"pricePerHour"`
}

const (
	openingHour = 8
	closingHour = 22

	// DateLayout is the venue-local calendar day format used across the API
	// and the reservations table.
	DateLayout = "2006-01-02"

	// PassedSlotCutoff is how close to a slot's start time it stops being
	// bookable for the current day.
	PassedSlotCutoff = 30 * time.Minute
)

var courts = []Court{
	{ID: "court-1", Name: "Court 1", Description: "Premium wooden flooring, professional lighting", PricePerHour: 25},
	{ID: "court-2", Name: "Court 2", Description: "Standard court with good ventilation", PricePerHour: 20},
	{ID: "court-3", Name: "Court 3", Description: "Competition-ready court with gallery seating", PricePerHour: 30},
	{ID: "court-4", Name: "Court 4", Description: "Training court next to the equipment room", PricePerHour: 20},
}

// Timeslots returns the fixed daily grid: one-hour slots from 08:00 to 22:00.
func Timeslots() []Timeslot {
	slots := make([]Timeslot, 0, closingHour-openingHour)
	for h := openingHour; h < closingHour; h++ {
		start := time.Date(2020, 1, 1, h, 0, 0, 0, time.UTC)
		end := start.Add(time.Hour)
		slots = append(slots, Timeslot{
			ID:        fmt.Sprintf("%02d:00-%02d:00", h, h+1),
			Label:     fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04")),
			StartTime: start.Format("15:04"),
			EndTime:   end.Format("15:04"),
		})
	}
	return slots
}

// Courts returns the fixed court list in display order.
func Courts() []Court {
	out := make([]Court, len(courts))
	copy(out, courts)
	return out
}

func CourtByID(id string) (Court, bool) {
	for _, c := range courts {
		if c.ID == id {
			return c, true
		}
	}
	return Court{}, false
}

func TimeslotByID(id string) (Timeslot, bool) {
	for _, s := range Timeslots() {
		if s.ID == id {
			return s, true
		}
	}
	return Timeslot{}, false
}

// Price is the authoritative total for booking the given slots on one court.
// Client-submitted amounts are validated against this, never trusted.
func Price(courtID string, slotIDs []string) (float64, error) {
	court, ok := CourtByID(courtID)
	if !ok {
		return 0, fmt.Errorf("unknown court %q", courtID)
	}
	for _, id := range slotIDs {
		if _, ok := TimeslotByID(id); !ok {
			return 0, fmt.Errorf("unknown timeslot %q", id)
		}
	}
	return court.PricePerHour * float64(len(slotIDs)), nil
}

// SlotPassed reports whether the slot can no longer be booked for date, as
// seen from now. Only the current venue-local day is restricted; a slot is
// passed once its start time is at or before now plus PassedSlotCutoff.
func SlotPassed(slotID, date string, now time.Time) bool {
	if date != now.Format(DateLayout) {
		return false
	}
	slot, ok := TimeslotByID(slotID)
	if !ok {
		return false
	}
	start, err := time.ParseInLocation(DateLayout+" 15:04", date+" "+slot.StartTime, now.Location())
	if err != nil {
		return false
	}
	return !start.After(now.Add(PassedSlotCutoff))
}
