package core

// Archetype classifies how a game is controlled. The host uses it to pick
// virtual pad buttons and gesture translation for compact clients.
type Archetype string

const (
	ArchetypeDirectional Archetype = "directional" // four-way moves (snake, 2048)
	ArchetypePlatform    Archetype = "platform"    // left/right + jump
	ArchetypeShooter     Archetype = "shooter"     // left/right + fire
	ArchetypeRacing      Archetype = "racing"      // steer + accelerate/brake
	ArchetypePaddle      Archetype = "paddle"      // up/down paddle
	ArchetypeTap         Archetype = "tap"         // single button / pointer
	ArchetypeRunner      Archetype = "runner"      // jump + duck
	ArchetypeCombat      Archetype = "combat"      // d-pad + two buttons
	ArchetypeContinuous  Archetype = "continuous"  // steer toward pointer
)

// Archetypes lists every archetype in display order.
func Archetypes() []Archetype {
	return []Archetype{
		ArchetypeDirectional,
		ArchetypePlatform,
		ArchetypeShooter,
		ArchetypeRacing,
		ArchetypePaddle,
		ArchetypeTap,
		ArchetypeRunner,
		ArchetypeCombat,
		ArchetypeContinuous,
	}
}

// Valid reports whether a is a known archetype.
func (a Archetype) Valid() bool {
	for _, known := range Archetypes() {
		if a == known {
			return true
		}
	}
	return false
}
