package character

import "github.com/automoto/teerace/shared/netconfig"

// edge counts above this are garbage and ignored
const maxSwitchEdges = 128

// HandleWeaponSwitch queues a weapon from the next/previous buttons or a
// direct selection and switches when possible.
func (c *Character) HandleWeaponSwitch() {
	wanted := c.activeWeapon
	if c.queuedWeapon != noWeapon {
		wanted = c.queuedWeapon
	}

	next := CountInput(c.latestPrevInput.NextWeapon, c.latestInput.NextWeapon).Presses
	prev := CountInput(c.latestPrevInput.PrevWeapon, c.latestInput.PrevWeapon).Presses

	if next < maxSwitchEdges && c.ownsAnyWeapon() {
		for next > 0 {
			wanted = (wanted + 1) % netconfig.WeaponID(netconfig.NumWeapons)
			if c.weapons[wanted].Got {
				next--
			}
		}
	}

	if prev < maxSwitchEdges && c.ownsAnyWeapon() {
		for prev > 0 {
			wanted--
			if wanted < 0 {
				wanted = netconfig.WeaponID(netconfig.NumWeapons - 1)
			}
			if c.weapons[wanted].Got {
				prev--
			}
		}
	}

	if c.latestInput.WantedWeapon != 0 {
		wanted = netconfig.WeaponID(c.latestInput.WantedWeapon - 1)
	}

	if wanted.Valid() && wanted != c.activeWeapon && c.weapons[wanted].Got {
		c.queuedWeapon = wanted
	}

	c.DoWeaponSwitch()
}

// DoWeaponSwitch commits the queued weapon once reloading is done. Ninja and
// partner race pin the current weapon.
func (c *Character) DoWeaponSwitch() {
	if c.reloadTimer != 0 || c.queuedWeapon == noWeapon || c.weapons[netconfig.WeaponNinja].Got {
		return
	}
	if c.world.Controller().IsHPRace() {
		return
	}

	c.SetWeapon(c.queuedWeapon)
}

func (c *Character) ownsAnyWeapon() bool {
	for _, slot := range c.weapons {
		if slot.Got {
			return true
		}
	}
	return false
}
