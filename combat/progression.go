package combat

const (
	MaxFragments = 3
	MaxPotions   = 3
)

// Progression is the player's persisted state across deaths: keys,
// collectibles, coins, unlocked abilities and the active checkpoint.
type Progression struct {
	DashUnlocked bool `yaml:"dash_unlocked"`
	Keys         int  `yaml:"keys"`
	BossKeys     int  `yaml:"boss_keys"`
	Fragments    int  `yaml:"fragments"`
	Potions      int  `yaml:"potions"`
	Coins        int  `yaml:"coins"`
	Checkpoint   int  `yaml:"checkpoint"`
}

func (p *Progression) UnlockDash() { p.DashUnlocked = true }

func (p *Progression) AddKey()     { p.Keys++ }
func (p *Progression) AddBossKey() { p.BossKeys++ }

// UseKey consumes a regular key if one is held.
func (p *Progression) UseKey() bool {
	if p.Keys <= 0 {
		return false
	}
	p.Keys--
	return true
}

func (p *Progression) UseBossKey() bool {
	if p.BossKeys <= 0 {
		return false
	}
	p.BossKeys--
	return true
}

// AddFragment adds one fragment unless the cap is reached.
func (p *Progression) AddFragment() bool {
	if p.Fragments >= MaxFragments {
		return false
	}
	p.Fragments++
	return true
}

func (p *Progression) AddPotion() bool {
	if p.Potions >= MaxPotions {
		return false
	}
	p.Potions++
	return true
}

// TakePotion removes one potion and reports whether there was one.
func (p *Progression) TakePotion() bool {
	if p.Potions <= 0 {
		return false
	}
	p.Potions--
	return true
}

func (p *Progression) AddCoins(n int) {
	if n > 0 {
		p.Coins += n
	}
}

// SpendCoins deducts n when affordable.
func (p *Progression) SpendCoins(n int) bool {
	if n < 0 || n > p.Coins {
		return false
	}
	p.Coins -= n
	return true
}

// SetCheckpoint records index when it addresses one of count spawn points.
func (p *Progression) SetCheckpoint(index, count int) bool {
	if index < 0 || index >= count {
		return false
	}
	p.Checkpoint = index
	return true
}

// Apply credits an awarded item and returns the quantity that did not fit.
func (p *Progression) Apply(item AwardedLoot) int {
	if item.Quantity <= 0 {
		return 0
	}
	switch item.Kind {
	case ItemCoin:
		p.AddCoins(item.Quantity)
	case ItemKey:
		p.Keys += item.Quantity
	case ItemBossKey:
		p.BossKeys += item.Quantity
	case ItemDash:
		p.UnlockDash()
	case ItemPotion:
		return fill(item.Quantity, p.AddPotion)
	case ItemFragment:
		return fill(item.Quantity, p.AddFragment)
	}
	return 0
}

func fill(n int, add func() bool) int {
	for ; n > 0; n-- {
		if !add() {
			return n
		}
	}
	return 0
}

func (p *Progression) Reset() { *p = Progression{} }
