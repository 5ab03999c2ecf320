package telemetry

import (
	"testing"
	"time"
)

func TestCountersAccumulate(t *testing.T) {
	c := NewCounters()
	c.RecordSend(128)
	c.RecordSend(72)
	c.RecordTickDuration(250 * time.Microsecond)
	c.SetOccupancy(1, 2, 3, 6, 9)

	snap := c.Snapshot()
	if snap.BytesSent != 200 || snap.MessagesSent != 2 {
		t.Fatalf("unexpected send totals %+v", snap)
	}
	if snap.TickDurationMicros != 250 {
		t.Fatalf("expected tick duration 250us, got %d", snap.TickDurationMicros)
	}
	if snap.PaidRooms != 1 || snap.CasualRooms != 2 {
		t.Fatalf("unexpected room gauges %+v", snap)
	}
	if snap.PaidPlayers != 3 || snap.CasualPlayers != 6 || snap.FreeplayPlayers != 9 {
		t.Fatalf("unexpected player gauges %+v", snap)
	}
}

func TestNilCountersAreSafe(t *testing.T) {
	var c *Counters
	c.RecordSend(10)
	c.RecordTickDuration(time.Millisecond)
	c.SetOccupancy(1, 1, 1, 1, 1)
	if snap := c.Snapshot(); snap != (Snapshot{}) {
		t.Fatalf("nil counters must snapshot to zero, got %+v", snap)
	}
}

func TestNegativeValuesClampToZero(t *testing.T) {
	c := NewCounters()
	c.RecordSend(-5)
	c.RecordTickDuration(-time.Second)

	snap := c.Snapshot()
	if snap.BytesSent != 0 {
		t.Fatalf("negative byte counts must clamp, got %d", snap.BytesSent)
	}
	if snap.MessagesSent != 1 {
		t.Fatalf("the frame itself still counts, got %d", snap.MessagesSent)
	}
	if snap.TickDurationMicros != 0 {
		t.Fatalf("negative durations must clamp, got %d", snap.TickDurationMicros)
	}
}
