package leveldata

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/automoto/teerace/shared/netconfig"
)

const testTileset = ` <tileset firstgid="1" name="entities" tilewidth="32" tileheight="32" tilecount="4" columns="4">
  <tile id="0"><properties><property name="collision" value="solid"/></properties></tile>
  <tile id="1"><properties><property name="collision" value="death"/></properties></tile>
  <tile id="2"><properties><property name="race" value="boost"/></properties></tile>
  <tile id="3"><properties><property name="teleport" type="int" value="2"/></properties></tile>
 </tileset>
`

const testMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="3" height="2" tilewidth="32" tileheight="32" infinite="0" nextlayerid="4" nextobjectid="3">
` + testTileset + ` <layer id="1" name="game" width="3" height="2">
  <data encoding="csv">
1,0,2,
1,1,1
</data>
 </layer>
 <layer id="2" name="race" width="3" height="2">
  <data encoding="csv">
0,3,4,
0,0,0
</data>
 </layer>
 <objectgroup id="3" name="teleport">
  <object id="1" x="80" y="16"><properties><property name="id" type="int" value="2"/></properties></object>
 </objectgroup>
 <objectgroup id="4" name="spawn">
  <object id="2" x="48" y="16"/>
 </objectgroup>
</map>
`

const noGameMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="1" height="1" tilewidth="32" tileheight="32" infinite="0" nextlayerid="2" nextobjectid="1">
` + testTileset + ` <layer id="1" name="decoration" width="1" height="1">
  <data encoding="csv">
0
</data>
 </layer>
</map>
`

func TestLoadLevel(t *testing.T) {
	fsys := fstest.MapFS{"levels/test.tmx": {Data: []byte(testMap)}}

	level, err := LoadLevel(fsys, "levels/test.tmx")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if level.Width != 3 || level.Height != 2 {
		t.Fatalf("expected 3x2 level, got %dx%d", level.Width, level.Height)
	}

	wantGame := []int{netconfig.ColFlagSolid, 0, netconfig.ColFlagDeath, netconfig.ColFlagSolid, netconfig.ColFlagSolid, netconfig.ColFlagSolid}
	for i, want := range wantGame {
		if level.Game[i] != want {
			t.Fatalf("expected game tile %d to be %d, got %d", i, want, level.Game[i])
		}
	}
	if level.Race[1] != netconfig.TileBoost {
		t.Fatalf("expected boost tile at 1, got %d", level.Race[1])
	}
	if level.Teleports[2] != 2 {
		t.Fatalf("expected teleporter 2 at tile 2, got %d", level.Teleports[2])
	}
	exits := level.TeleportExits[2]
	if len(exits) != 1 || exits[0].X != 80 || exits[0].Y != 16 {
		t.Fatalf("expected one exit at (80,16), got %v", exits)
	}
	if len(level.SpawnPoints) != 1 || level.SpawnPoints[0].X != 48 {
		t.Fatalf("expected one spawn at x=48, got %v", level.SpawnPoints)
	}
	if level.Checksum == 0 {
		t.Fatalf("expected a map checksum")
	}
}

func TestLoadLevelRequiresGameLayer(t *testing.T) {
	fsys := fstest.MapFS{"levels/empty.tmx": {Data: []byte(noGameMap)}}

	_, err := LoadLevel(fsys, "levels/empty.tmx")
	if !errors.Is(err, ErrNoGameLayer) {
		t.Fatalf("expected ErrNoGameLayer, got %v", err)
	}
}

func TestLoadAllLevelsSortsNames(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/b.tmx": {Data: []byte(testMap)},
		"levels/a.tmx": {Data: []byte(testMap)},
	}

	levels, names, err := LoadAllLevels(fsys, "levels")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("expected sorted names [a b], got %v", names)
	}
	if levels["a"].Checksum != levels["b"].Checksum {
		t.Fatalf("expected identical files to share a checksum")
	}
}
