package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		current BookingStatus
		next    BookingStatus
		want    bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"confirmed to in_progress", StatusConfirmed, StatusInProgress, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"pending skips to in_progress", StatusPending, StatusInProgress, false},
		{"confirmed back to pending", StatusConfirmed, StatusPending, false},
		{"completed to in_progress", StatusCompleted, StatusInProgress, false},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, true},
		{"completed to cancelled", StatusCompleted, StatusCancelled, false},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, false},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.current}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.next))
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	booking := &Booking{ScheduledStart: start, DurationMinutes: 60}

	tests := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{"identical interval", start, 60, true},
		{"starts inside", start.Add(30 * time.Minute), 60, true},
		{"ends inside", start.Add(-30 * time.Minute), 60, true},
		{"contains booking", start.Add(-30 * time.Minute), 120, true},
		{"contained by booking", start.Add(15 * time.Minute), 30, true},
		{"starts exactly at end", start.Add(60 * time.Minute), 60, false},
		{"ends exactly at start", start.Add(-60 * time.Minute), 60, false},
		{"fully before", start.Add(-3 * time.Hour), 60, false},
		{"fully after", start.Add(3 * time.Hour), 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.start, tt.duration))
		})
	}
}

func TestBooking_OccupiesSlot(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).OccupiesSlot())
	assert.True(t, (&Booking{Status: StatusInProgress}).OccupiesSlot())
	assert.False(t, (&Booking{Status: StatusPending}).OccupiesSlot())
	assert.False(t, (&Booking{Status: StatusCompleted}).OccupiesSlot())
	assert.False(t, (&Booking{Status: StatusCancelled}).OccupiesSlot())
}

func TestAddress_Validate(t *testing.T) {
	district := "Октябрьский"
	landmark := "напротив ЦУМа"
	empty := ""

	tests := []struct {
		name    string
		address Address
		wantErr bool
	}{
		{
			name:    "exact with text",
			address: Address{Type: AddressExact, Text: "ул. Киевская 95, кв. 12"},
			wantErr: false,
		},
		{
			name:    "landmark with landmark set",
			address: Address{Type: AddressLandmark, Text: "вход со двора, 2 этаж", Landmark: &landmark},
			wantErr: false,
		},
		{
			name:    "district with district set",
			address: Address{Type: AddressDistrict, Text: "уточнить по телефону", District: &district},
			wantErr: false,
		},
		{
			name:    "landmark without landmark",
			address: Address{Type: AddressLandmark, Text: "вход со двора, 2 этаж"},
			wantErr: true,
		},
		{
			name:    "landmark with empty landmark",
			address: Address{Type: AddressLandmark, Text: "вход со двора, 2 этаж", Landmark: &empty},
			wantErr: true,
		},
		{
			name:    "district without district",
			address: Address{Type: AddressDistrict, Text: "уточнить по телефону"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			address: Address{Type: AddressType("gps"), Text: "42.8746, 74.5698 точка"},
			wantErr: true,
		},
		{
			name:    "text too short",
			address: Address{Type: AddressExact, Text: "кв. 5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.address.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
