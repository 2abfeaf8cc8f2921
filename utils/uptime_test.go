package utils

import (
	"hub/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateUptimeEmptyWindow(t *testing.T) {
	s := AggregateUptime(nil)

	assert.Equal(t, 0, s.TotalChecks)
	assert.Equal(t, 0, s.OnlineChecks)
	assert.Equal(t, 0.0, s.UptimePercentage)
	assert.Equal(t, 0.0, s.AvgResponseMs)
}

func TestAggregateUptimePercentage(t *testing.T) {
	var checks []models.UptimeCheck
	for i := 0; i < 8; i++ {
		checks = append(checks, models.UptimeCheck{Online: true, ResponseTimeMs: 50})
	}
	for i := 0; i < 2; i++ {
		checks = append(checks, models.UptimeCheck{Online: false})
	}

	s := AggregateUptime(checks)

	assert.Equal(t, 10, s.TotalChecks)
	assert.Equal(t, 8, s.OnlineChecks)
	assert.Equal(t, 80.0, s.UptimePercentage)
}

// Offline samples carry no latency; they must not drag the average down.
func TestAggregateUptimeAvgResponseOnlineOnly(t *testing.T) {
	checks := []models.UptimeCheck{
		{Online: true, ResponseTimeMs: 100},
		{Online: true, ResponseTimeMs: 200},
		{Online: false, ResponseTimeMs: 0},
		{Online: false, ResponseTimeMs: 0},
	}

	s := AggregateUptime(checks)

	assert.Equal(t, 150.0, s.AvgResponseMs)
}

func TestAggregateUptimePeakPlayers(t *testing.T) {
	checks := []models.UptimeCheck{
		{Online: true, PlayersOnline: 4},
		{Online: true, PlayersOnline: 17},
		{Online: false, PlayersOnline: 0},
		{Online: true, PlayersOnline: 9},
	}

	s := AggregateUptime(checks)

	assert.Equal(t, 17, s.PeakPlayers)
}

func TestAggregateUptimeAllOffline(t *testing.T) {
	checks := []models.UptimeCheck{
		{Online: false},
		{Online: false},
	}

	s := AggregateUptime(checks)

	assert.Equal(t, 0.0, s.UptimePercentage)
	assert.Equal(t, 0.0, s.AvgResponseMs)
}
