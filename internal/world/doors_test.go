package world

import "testing"

func newTestDoors() *DoorSet {
	return NewDoorSet(64,
		Door{ID: "front", TileX: 2, TileY: 2, AutoCloseDelay: 3000},
		Door{ID: "cellar", TileX: 5, TileY: 1, KeyID: "key1", AutoCloseDelay: 3000},
	)
}

func TestDoorQueries(t *testing.T) {
	ds := newTestDoors()

	if ds.IsDoorOpenAt(2, 2) {
		t.Errorf("Doors start closed")
	}
	if !ds.IsDoorBlockingTile(2, 2) {
		t.Errorf("Closed door should block its tile")
	}
	if ds.IsDoorBlockingTile(3, 3) || ds.IsDoorOpenAt(3, 3) {
		t.Errorf("Tile without a door reported a door")
	}
	if !ds.IsDoorBlocking(2*64+1, 2*64+63) {
		t.Errorf("World position inside the door tile should be blocked")
	}
	if !ds.IsDoorNear(2*64-10, 2*64+32, 20) {
		t.Errorf("Door 10 units to the right should be near")
	}

	ds.DoorAt(2, 2).Open = true
	if !ds.IsDoorOpenAt(2, 2) || ds.IsDoorBlockingTile(2, 2) {
		t.Errorf("Open door should be open and not blocking")
	}
	if ds.IsDoorNear(2*64-10, 2*64+32, 20) {
		t.Errorf("Open door should not be near-blocking")
	}
}

func TestDoorToggle(t *testing.T) {
	hasKey := func(id string) bool { return id == "key1" }

	tests := []struct {
		name      string
		door      Door
		hasKey    func(string) bool
		userX     int
		userY     int
		want      ToggleResult
		wantOpen  bool
		wantTimer float64
	}{
		{"open unlocked", Door{TileX: 2, TileY: 2, AutoCloseDelay: 3000}, nil, 0, 0, DoorOpened, true, 3000},
		{"close unlocked", Door{TileX: 2, TileY: 2, Open: true, AutoCloseDelay: 3000}, nil, 0, 0, DoorClosed, false, 0},
		{"locked without key", Door{TileX: 5, TileY: 1, KeyID: "key1"}, nil, 0, 0, DoorLocked, false, 0},
		{"locked wrong key", Door{TileX: 5, TileY: 1, KeyID: "key2"}, hasKey, 0, 0, DoorLocked, false, 0},
		{"locked with key", Door{TileX: 5, TileY: 1, KeyID: "key1", AutoCloseDelay: 3000}, hasKey, 0, 0, DoorOpened, true, 3000},
		{"standing in doorway", Door{TileX: 2, TileY: 2, Open: true}, nil, 2, 2, DoorOccupied, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := tc.door
			got := d.Toggle(tc.hasKey, tc.userX, tc.userY)
			if got != tc.want {
				t.Errorf("Toggle = %v, want %v", got, tc.want)
			}
			if d.Open != tc.wantOpen {
				t.Errorf("Open = %v, want %v", d.Open, tc.wantOpen)
			}
			if d.CloseTimer() != tc.wantTimer {
				t.Errorf("CloseTimer = %v, want %v", d.CloseTimer(), tc.wantTimer)
			}
		})
	}
}

func TestDoorAutoClose(t *testing.T) {
	ds := newTestDoors()
	front := ds.DoorAt(2, 2)
	front.Toggle(nil, 0, 0)

	if closed := ds.Update(2999, 0, 0); len(closed) != 0 {
		t.Fatalf("Door closed early")
	}
	closed := ds.Update(1, 0, 0)
	if len(closed) != 1 || closed[0] != front {
		t.Fatalf("Expected the front door to close, got %d doors", len(closed))
	}
	if front.Open {
		t.Errorf("Door still open after auto-close")
	}
}

func TestDoorAutoCloseWaitsForOccupant(t *testing.T) {
	ds := newTestDoors()
	front := ds.DoorAt(2, 2)
	front.Toggle(nil, 0, 0)

	if closed := ds.Update(3000, 2, 2); len(closed) != 0 {
		t.Fatalf("Door closed on its occupant")
	}
	if !front.Open || front.CloseTimer() != 1000 {
		t.Fatalf("Expected door open with a 1000ms retry, got open=%v timer=%v", front.Open, front.CloseTimer())
	}

	if closed := ds.Update(1000, 1, 2); len(closed) != 1 {
		t.Errorf("Door should close once the doorway is clear")
	}
}
