package component

import "github.com/milk9111/dungeondash/combat"

var HealthComponent = NewComponent[combat.Health]()

var AttackComponent = NewComponent[combat.AttackSequencer]()

var DashComponent = NewComponent[combat.Dash]()

var BrainComponent = NewComponent[combat.EnemyBrain]()

var ContactDamageComponent = NewComponent[combat.ContactDamage]()

var KnockbackComponent = NewComponent[combat.Knockback]()
