// Package leveldata provides TMX level parsing shared between client and server.
// It produces plain tile grids; collision queries live in package collision.
package leveldata

import "errors"

// TileSize is the edge length of one map tile in world units.
const TileSize = 32

// ErrNoGameLayer is returned for maps without a "game" tile layer.
var ErrNoGameLayer = errors.New("map has no game layer")

// Level holds every gameplay-relevant grid parsed from a TMX level file.
// All grids are row-major with Width*Height entries.
type Level struct {
	Width  int // in tiles
	Height int // in tiles

	Game        []int // collision flags
	Race        []int // race tile kind, netconfig.Tile*
	Checkpoints []int // checkpoint number, 0 for none
	Teleports   []int // teleporter number, 0 for none

	// TeleportExits maps a teleporter number to its exit positions.
	TeleportExits map[int][]Point
	SpawnPoints   []SpawnPoint

	// Checksum is the xxh3 hash of the raw map file.
	Checksum uint64
}

// Point is a world position.
type Point struct {
	X, Y float32
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float32
	Index int
}

// NewLevel allocates an empty level of the given size in tiles.
func NewLevel(width, height int) *Level {
	n := width * height
	return &Level{
		Width:         width,
		Height:        height,
		Game:          make([]int, n),
		Race:          make([]int, n),
		Checkpoints:   make([]int, n),
		Teleports:     make([]int, n),
		TeleportExits: make(map[int][]Point),
	}
}

// Set writes collision flags for tile (x, y).
func (l *Level) Set(x, y, flags int) {
	l.Game[y*l.Width+x] = flags
}

// SetRace writes a race tile kind for tile (x, y).
func (l *Level) SetRace(x, y, kind int) {
	l.Race[y*l.Width+x] = kind
}
