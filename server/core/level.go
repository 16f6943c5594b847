package core

import (
	"fmt"
	"os"

	"github.com/automoto/teerace/shared/collision"
	"github.com/automoto/teerace/shared/leveldata"
	"github.com/sirupsen/logrus"
	"github.com/solarlune/resolv"
)

// resolv cell size of the character index, one map tile
const bodyCellSize = leveldata.TileSize

// ServerLevel holds the server's collision engine, the character body index
// and spawn data for a level.
type ServerLevel struct {
	Name        string
	Level       *leveldata.Level
	Collision   *collision.Collision
	Space       *resolv.Space
	SpawnPoints []leveldata.SpawnPoint
}

// NewServerLevel wraps parsed level data. The resolv space covers the map in
// world units and only ever holds character bodies.
func NewServerLevel(name string, level *leveldata.Level) *ServerLevel {
	width := level.Width * leveldata.TileSize
	height := level.Height * leveldata.TileSize

	return &ServerLevel{
		Name:        name,
		Level:       level,
		Collision:   collision.New(level),
		Space:       resolv.NewSpace(width, height, bodyCellSize, bodyCellSize),
		SpawnPoints: level.SpawnPoints,
	}
}

// LoadServerLevel loads <mapsDir>/<name>.tmx.
func LoadServerLevel(mapsDir, name string, log logrus.FieldLogger) (*ServerLevel, error) {
	level, err := leveldata.LoadLevel(os.DirFS(mapsDir), name+".tmx")
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}

	log.WithField("component", "level").Infof("loaded level %s: %d spawn points, %d teleporters, %dx%d tiles, checksum %016x",
		name, len(level.SpawnPoints), len(level.TeleportExits), level.Width, level.Height, level.Checksum)

	return NewServerLevel(name, level), nil
}
