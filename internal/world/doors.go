package world

import "math"

// DoorQuery is the read-only view of door state that collision and rendering use.
type DoorQuery interface {
	IsDoorOpenAt(tileX, tileY int) bool
}

// ToggleResult describes what happened when the player used a door.
type ToggleResult int

const (
	DoorOpened ToggleResult = iota
	DoorClosed
	DoorLocked
	DoorOccupied
)

func (r ToggleResult) String() string {
	switch r {
	case DoorOpened:
		return "opened"
	case DoorClosed:
		return "closed"
	case DoorLocked:
		return "locked"
	case DoorOccupied:
		return "occupied"
	}
	return "unknown"
}

// onDoorRetryMs is how long auto-close waits again while someone stands in the doorway.
const onDoorRetryMs = 1000

// Door is a door slot on the grid. KeyID is empty for unlocked doors.
type Door struct {
	ID             string
	TileX, TileY   int
	Open           bool
	KeyID          string
	AutoCloseDelay float64 // ms

	closeTimer float64
}

// CloseTimer is the time left before the door closes itself, 0 when no close is pending.
func (d *Door) CloseTimer() float64 { return d.closeTimer }

// Toggle opens or closes the door. hasKey may be nil when the user carries no keys.
// A door cannot be closed while the user occupies its tile.
func (d *Door) Toggle(hasKey func(keyID string) bool, userTileX, userTileY int) ToggleResult {
	if d.KeyID != "" && (hasKey == nil || !hasKey(d.KeyID)) {
		return DoorLocked
	}
	if d.Open && userTileX == d.TileX && userTileY == d.TileY {
		return DoorOccupied
	}

	d.Open = !d.Open
	if d.Open {
		d.closeTimer = d.AutoCloseDelay
		return DoorOpened
	}
	d.closeTimer = 0
	return DoorClosed
}

// DoorSet holds the mutable state of every door on a grid.
type DoorSet struct {
	doors    []*Door
	tileSize float64
}

// NewDoorSet copies the door definitions into a new set.
func NewDoorSet(tileSize float64, doors ...Door) *DoorSet {
	ds := &DoorSet{tileSize: tileSize}
	for _, d := range doors {
		door := d
		if door.Open {
			door.closeTimer = door.AutoCloseDelay
		}
		ds.doors = append(ds.doors, &door)
	}
	return ds
}

func (ds *DoorSet) Doors() []*Door { return ds.doors }

// DoorAt returns the door on a tile, or nil.
func (ds *DoorSet) DoorAt(tileX, tileY int) *Door {
	for _, d := range ds.doors {
		if d.TileX == tileX && d.TileY == tileY {
			return d
		}
	}
	return nil
}

// IsDoorOpenAt reports an open door on the tile. A door slot with no door
// registered reads as closed.
func (ds *DoorSet) IsDoorOpenAt(tileX, tileY int) bool {
	d := ds.DoorAt(tileX, tileY)
	return d != nil && d.Open
}

// IsDoorBlockingTile reports a closed door on the tile.
func (ds *DoorSet) IsDoorBlockingTile(tileX, tileY int) bool {
	d := ds.DoorAt(tileX, tileY)
	return d != nil && !d.Open
}

// IsDoorBlocking reports a closed door under a world position.
func (ds *DoorSet) IsDoorBlocking(x, y float64) bool {
	return ds.IsDoorBlockingTile(int(math.Floor(x/ds.tileSize)), int(math.Floor(y/ds.tileSize)))
}

// IsDoorNear is the four-point probe used for walls, applied to closed doors.
func (ds *DoorSet) IsDoorNear(x, y, radius float64) bool {
	return ds.IsDoorBlocking(x+radius, y) ||
		ds.IsDoorBlocking(x-radius, y) ||
		ds.IsDoorBlocking(x, y+radius) ||
		ds.IsDoorBlocking(x, y-radius)
}

// Update advances auto-close timers. A door whose timer runs out while the
// occupant stands on it waits another second. Returns the doors that closed.
func (ds *DoorSet) Update(dtMs float64, occupantTileX, occupantTileY int) []*Door {
	var closed []*Door
	for _, d := range ds.doors {
		if !d.Open || d.closeTimer <= 0 {
			continue
		}
		d.closeTimer -= dtMs
		if d.closeTimer > 0 {
			continue
		}
		if occupantTileX == d.TileX && occupantTileY == d.TileY {
			d.closeTimer = onDoorRetryMs
			continue
		}
		d.Open = false
		d.closeTimer = 0
		closed = append(closed, d)
	}
	return closed
}

// CloseAll shuts every door and cancels pending auto-closes.
func (ds *DoorSet) CloseAll() {
	for _, d := range ds.doors {
		d.Open = false
		d.closeTimer = 0
	}
}
