package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/teerace/shared/netconfig"
	"github.com/lafriks/go-tiled"
	"github.com/zeebo/xxh3"
)

// Layer and object group names recognised in TMX files.
const (
	layerGame     = "game"
	layerRace     = "race"
	groupSpawn    = "spawn"
	groupTeleport = "teleport"
)

var collisionFlags = map[string]int{
	"solid":  netconfig.ColFlagSolid,
	"death":  netconfig.ColFlagDeath,
	"nohook": netconfig.ColFlagSolid | netconfig.ColFlagNoHook,
}

var raceKinds = map[string]int{
	"boost":  netconfig.TileBoost,
	"boostr": netconfig.TileBoostR,
	"boostl": netconfig.TileBoostL,
	"jumper": netconfig.TileJumper,
	"begin":  netconfig.TileBegin,
	"end":    netconfig.TileEnd,
}

// LoadLevel parses a TMX file into a Level. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	raw, err := fs.ReadFile(fsys, tmxPath)
	if err != nil {
		return nil, fmt.Errorf("read TMX %s: %w", tmxPath, err)
	}

	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != TileSize || levelMap.TileHeight != TileSize {
		return nil, fmt.Errorf("load TMX %s: tiles must be %dx%d, got %dx%d",
			tmxPath, TileSize, TileSize, levelMap.TileWidth, levelMap.TileHeight)
	}

	level := NewLevel(levelMap.Width, levelMap.Height)
	level.Checksum = xxh3.Hash(raw)

	foundGame := false
	for _, layer := range levelMap.Layers {
		switch layer.Name {
		case layerGame:
			foundGame = true
			level.readGameLayer(layer)
		case layerRace:
			level.readRaceLayer(layer)
		}
	}
	if !foundGame {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, ErrNoGameLayer)
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case groupSpawn:
			for _, o := range og.Objects {
				level.SpawnPoints = append(level.SpawnPoints, SpawnPoint{
					X:     float32(o.X),
					Y:     float32(o.Y),
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case groupTeleport:
			for _, o := range og.Objects {
				id := o.Properties.GetInt("id")
				if id == 0 {
					continue
				}
				level.TeleportExits[id] = append(level.TeleportExits[id], Point{X: float32(o.X), Y: float32(o.Y)})
			}
		}
	}

	// Sort spawns by index, then left-to-right, for consistent assignment
	sort.SliceStable(level.SpawnPoints, func(i, j int) bool {
		a, b := level.SpawnPoints[i], level.SpawnPoints[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.X < b.X
	})

	return level, nil
}

func (l *Level) readGameLayer(layer *tiled.Layer) {
	for i, tile := range layer.Tiles {
		if i >= len(l.Game) || tile.IsNil() {
			continue
		}
		tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
		if err != nil {
			continue
		}
		l.Game[i] = collisionFlags[tilesetTile.Properties.GetString("collision")]
	}
}

func (l *Level) readRaceLayer(layer *tiled.Layer) {
	for i, tile := range layer.Tiles {
		if i >= len(l.Race) || tile.IsNil() {
			continue
		}
		tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
		if err != nil {
			continue
		}
		props := tilesetTile.Properties
		l.Race[i] = raceKinds[props.GetString("race")]
		if cp := props.GetInt("checkpoint"); cp > 0 && cp <= netconfig.MaxCheckpoints {
			l.Checkpoints[i] = cp
		}
		l.Teleports[i] = props.GetInt("teleport")
	}
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each,
// and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		level, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		levels[stem] = level
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
