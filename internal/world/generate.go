package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/roguelike/internal/dice"
	"github.com/samdwyer/roguelike/internal/telemetry"
)

// Generator names a map layout algorithm.
type Generator string

const (
	// GeneratorRooms scatters non-overlapping rooms and chains them with
	// L-shaped corridors.
	GeneratorRooms Generator = "rooms"
	// GeneratorBSP partitions the map recursively and puts one room per leaf.
	GeneratorBSP Generator = "bsp"
)

// Valid reports whether g names a known generator.
func (g Generator) Valid() bool {
	return g == GeneratorRooms || g == GeneratorBSP
}

const (
	maxRooms    = 30
	minRoomSize = 6
	maxRoomSize = 10
)

// Generate builds a new map of the given size with the chosen generator.
// The result always has at least one room.
func Generate(ctx context.Context, gen Generator, width, height int, rng *rand.Rand) (*Map, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.generate")
	defer span.End()

	startTime := time.Now()
	m := NewMap(width, height)

	switch gen {
	case GeneratorRooms, "":
		m.generateRoomsAndCorridors(rng)
	case GeneratorBSP:
		m.generateBSP(rng)
	default:
		return nil, fmt.Errorf("unknown map generator %q", gen)
	}

	if len(m.Rooms) == 0 {
		// Tiny maps can defeat both generators; carve what fits.
		room := NewRect(0, 0, max(1, width-2), max(1, height-2))
		m.applyRoom(room)
		m.Rooms = append(m.Rooms, room)
	}
	m.PopulateBlocked()

	span.SetAttributes(
		attribute.String("map.generator", string(gen)),
		attribute.Int("map.width", m.Width),
		attribute.Int("map.height", m.Height),
		attribute.Int("map.room_count", len(m.Rooms)),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return m, nil
}

// generateRoomsAndCorridors places up to maxRooms random rooms, discarding
// any that touch an earlier one, and links each to its predecessor.
func (m *Map) generateRoomsAndCorridors(rng *rand.Rand) {
	for i := 0; i < maxRooms; i++ {
		w := dice.Range(rng, minRoomSize, maxRoomSize)
		h := dice.Range(rng, minRoomSize, maxRoomSize)
		x := dice.Roll(rng, 1, m.Width-w-1) - 1
		y := dice.Roll(rng, 1, m.Height-h-1) - 1
		if x < 0 || y < 0 {
			continue
		}
		room := NewRect(x, y, w, h)

		ok := true
		for _, other := range m.Rooms {
			if room.Intersects(other) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		m.applyRoom(room)
		if len(m.Rooms) > 0 {
			newX, newY := room.Center()
			prevX, prevY := m.Rooms[len(m.Rooms)-1].Center()
			if dice.Range(rng, 0, 2) == 1 {
				m.applyHorizontalTunnel(prevX, newX, prevY)
				m.applyVerticalTunnel(prevY, newY, newX)
			} else {
				m.applyVerticalTunnel(prevY, newY, prevX)
				m.applyHorizontalTunnel(prevX, newX, newY)
			}
		}
		m.Rooms = append(m.Rooms, room)
	}
}

// applyRoom sets every tile in the room's interior to floor.
func (m *Map) applyRoom(room Rect) {
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			m.carve(x, y)
		}
	}
}

// applyHorizontalTunnel carves a horizontal tunnel.
func (m *Map) applyHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		m.carve(x, y)
	}
}

// applyVerticalTunnel carves a vertical tunnel.
func (m *Map) applyVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		m.carve(x, y)
	}
}

// carve turns a tile into floor unless it lies on the outer border.
func (m *Map) carve(x, y int) {
	if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
		m.Tiles[m.Idx(x, y)] = TileFloor
	}
}
