// Package combat provides the melee rules.
package combat

import (
	"fmt"

	"github.com/samdwyer/roguelike/internal/entity"
)

// Combatant is the interface for anything that can take part in melee.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetPower() int
	GetDefense() int
}

// Fighter adapts an entity's name and stats to Combatant.
type Fighter struct {
	Name  string
	Stats *entity.CombatStats
}

// GetName returns the fighter's name.
func (f Fighter) GetName() string { return f.Name }

// IsAlive returns true if the fighter has HP remaining.
func (f Fighter) IsAlive() bool { return f.Stats.IsAlive() }

// GetPower returns melee power.
func (f Fighter) GetPower() int { return f.Stats.Power }

// GetDefense returns defense.
func (f Fighter) GetDefense() int { return f.Stats.Defense }

var _ Combatant = Fighter{}

// Outcome is the result of one melee attack.
type Outcome struct {
	Attacked bool   // False when either side was already dead
	Damage   int    // Damage to queue against the target
	Message  string // Log line, empty when no attack happened
}

// CalculateDamage returns power minus defense, never below zero.
func CalculateDamage(power, defense int) int {
	return max(0, power-defense)
}

// ResolveMelee decides what happens when attacker swings at target. It does
// not apply the damage; the caller queues it.
func ResolveMelee(attacker, target Combatant) Outcome {
	if !attacker.IsAlive() || !target.IsAlive() {
		return Outcome{}
	}

	damage := CalculateDamage(attacker.GetPower(), target.GetDefense())
	if damage == 0 {
		return Outcome{
			Attacked: true,
			Message:  fmt.Sprintf("%s is unable to hurt %s", attacker.GetName(), target.GetName()),
		}
	}
	return Outcome{
		Attacked: true,
		Damage:   damage,
		Message:  fmt.Sprintf("%s hits %s, for %d hp.", attacker.GetName(), target.GetName(), damage),
	}
}
