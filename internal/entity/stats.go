package entity

// CombatStats holds an entity's fighting numbers.
type CombatStats struct {
	MaxHP   int `json:"maxHp"`
	HP      int `json:"hp"`
	Defense int `json:"defense"`
	Power   int `json:"power"`
}

// NewCombatStats creates stats at full health.
func NewCombatStats(hp, defense, power int) CombatStats {
	return CombatStats{MaxHP: hp, HP: hp, Defense: defense, Power: power}
}

// IsAlive returns true if the entity has HP remaining.
func (s *CombatStats) IsAlive() bool { return s.HP > 0 }

// TakeDamage reduces HP and returns actual damage taken.
func (s *CombatStats) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, max(s.HP, 0))
	s.HP -= actual
	return actual
}

// Heal restores HP up to MaxHP and returns actual amount healed.
func (s *CombatStats) Heal(amount int) int {
	if amount <= 0 || s.HP >= s.MaxHP {
		return 0
	}
	actual := min(amount, s.MaxHP-s.HP)
	s.HP += actual
	return actual
}
