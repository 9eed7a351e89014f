// Package all links every playable game into the binary. Importing it for
// side effects registers each game with the registry.
package all

import (
	_ "github.com/vovakirdan/arcade-portal/internal/games/breakout"
	_ "github.com/vovakirdan/arcade-portal/internal/games/clickspeed"
	_ "github.com/vovakirdan/arcade-portal/internal/games/dino"
	_ "github.com/vovakirdan/arcade-portal/internal/games/flappy"
	_ "github.com/vovakirdan/arcade-portal/internal/games/invaders"
	_ "github.com/vovakirdan/arcade-portal/internal/games/jumper"
	_ "github.com/vovakirdan/arcade-portal/internal/games/pong"
	_ "github.com/vovakirdan/arcade-portal/internal/games/racer"
	_ "github.com/vovakirdan/arcade-portal/internal/games/slots"
	_ "github.com/vovakirdan/arcade-portal/internal/games/snake"
	_ "github.com/vovakirdan/arcade-portal/internal/games/t2048"
	_ "github.com/vovakirdan/arcade-portal/internal/games/tetris"
)
