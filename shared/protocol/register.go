package protocol

import (
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetCharacter  uint = 10
	SyncIDNetProjectile uint = 11
	SyncIDNetLaser      uint = 12
	SyncIDNetPlayerInfo uint = 13
	SyncIDNetGameState  uint = 14
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetCharacter uint8 = 10
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	// Characters interpolate between snapshots; everything else is discrete
	// or extrapolated by the client from its launch parameters.
	if err := esync.RegisterComponent(
		SyncIDNetCharacter,
		netcomponents.NetCharacterData{},
		netcomponents.NetCharacter,
		esync.WithInterpFn(InterpIDNetCharacter, netcomponents.LerpNetCharacter),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetProjectile,
		netcomponents.NetProjectileData{},
		netcomponents.NetProjectile,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetLaser,
		netcomponents.NetLaserData{},
		netcomponents.NetLaser,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetPlayerInfo,
		netcomponents.NetPlayerInfoData{},
		netcomponents.NetPlayerInfo,
	); err != nil {
		return err
	}

	return esync.RegisterComponent(
		SyncIDNetGameState,
		netcomponents.NetGameStateData{},
		netcomponents.NetGameState,
	)
}
