package gamecore

// Tuning holds the physics and weapon constants shared by every core of a
// world. Values are float32 so clients can reproduce the simulation exactly.
type Tuning struct {
	GroundControlSpeed float32 `toml:"ground_control_speed"`
	GroundControlAccel float32 `toml:"ground_control_accel"`
	GroundFriction     float32 `toml:"ground_friction"`
	GroundJumpImpulse  float32 `toml:"ground_jump_impulse"`
	AirJumpImpulse     float32 `toml:"air_jump_impulse"`
	AirControlSpeed    float32 `toml:"air_control_speed"`
	AirControlAccel    float32 `toml:"air_control_accel"`
	AirFriction        float32 `toml:"air_friction"`
	HookLength         float32 `toml:"hook_length"`
	HookFireSpeed      float32 `toml:"hook_fire_speed"`
	HookDragAccel      float32 `toml:"hook_drag_accel"`
	HookDragSpeed      float32 `toml:"hook_drag_speed"`
	Gravity            float32 `toml:"gravity"`

	VelrampStart     float32 `toml:"velramp_start"`
	VelrampRange     float32 `toml:"velramp_range"`
	VelrampCurvature float32 `toml:"velramp_curvature"`

	GunCurvature float32 `toml:"gun_curvature"`
	GunSpeed     float32 `toml:"gun_speed"`
	GunLifetime  float32 `toml:"gun_lifetime"`

	ShotgunCurvature float32 `toml:"shotgun_curvature"`
	ShotgunSpeed     float32 `toml:"shotgun_speed"`
	ShotgunSpeeddiff float32 `toml:"shotgun_speeddiff"`
	ShotgunLifetime  float32 `toml:"shotgun_lifetime"`

	GrenadeCurvature float32 `toml:"grenade_curvature"`
	GrenadeSpeed     float32 `toml:"grenade_speed"`
	GrenadeLifetime  float32 `toml:"grenade_lifetime"`

	LaserReach       float32 `toml:"laser_reach"`
	LaserBounceDelay float32 `toml:"laser_bounce_delay"`
	LaserBounceNum   float32 `toml:"laser_bounce_num"`
	LaserBounceCost  float32 `toml:"laser_bounce_cost"`
	LaserDamage      float32 `toml:"laser_damage"`

	// PlayerCollision is 0 for no character collision, 1 for collision with
	// everyone and n >= 2 for collision with client n-2 only.
	PlayerCollision float32 `toml:"player_collision"`
	PlayerHooking   float32 `toml:"player_hooking"`
}

// DefaultTuning returns the stock tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		GroundControlSpeed: 10,
		GroundControlAccel: 100.0 / 50,
		GroundFriction:     0.5,
		GroundJumpImpulse:  13.2,
		AirJumpImpulse:     12,
		AirControlSpeed:    250.0 / 50,
		AirControlAccel:    1.5,
		AirFriction:        0.95,
		HookLength:         380,
		HookFireSpeed:      80,
		HookDragAccel:      3,
		HookDragSpeed:      15,
		Gravity:            0.5,

		VelrampStart:     550,
		VelrampRange:     2000,
		VelrampCurvature: 1.4,

		GunCurvature: 1.25,
		GunSpeed:     2200,
		GunLifetime:  2,

		ShotgunCurvature: 1.25,
		ShotgunSpeed:     2750,
		ShotgunSpeeddiff: 0.8,
		ShotgunLifetime:  0.20,

		GrenadeCurvature: 7,
		GrenadeSpeed:     1000,
		GrenadeLifetime:  2,

		LaserReach:       800,
		LaserBounceDelay: 150,
		LaserBounceNum:   1,
		LaserBounceCost:  0,
		LaserDamage:      5,

		PlayerCollision: 1,
		PlayerHooking:   1,
	}
}

// collidesWith reports whether the tuning lets a core interact with client cid.
func (t *Tuning) collidesWith(cid int) bool {
	switch pc := int(t.PlayerCollision); {
	case pc == 1:
		return true
	case pc >= 2:
		return pc-2 == cid
	default:
		return false
	}
}
