package catalog

import (
	"math"

	"github.com/nlebedev/chardraft/internal/model"
)

// Character id lists are positional: society derivation and client views
// reference characters by index, so order must never change.

var charactersCoe5 = []model.CharacterID{
	"baron", "necromancer", "demonologist", "witch", "priestess",
	"bakemono", "barbarian", "senator", "pale", "druid",
	"burgmeister", "warlock", "priest", "troll", "enchanter",
	"cultist", "dwarf", "el", "illusionist", "markgraf",
	"dryad", "scourge", "cloud", "kobold", "maharaja",
	"raksharaja", "guild",
}

var charactersCiv6 = []model.CharacterID{
	"ekaterina", "makedonsky",
}

// societies is the fixed list the shared cosmetic value is drawn from
var societies = []string{
	"dark", "agricultural", "empire", "fallen", "monarchy", "dawn",
}

// CharactersFor returns the ordered character id list for a game variant.
// Unknown game ids yield an empty list.
func CharactersFor(gameID model.GameID) []model.CharacterID {
	switch gameID {
	case model.GameCoe5:
		return append([]model.CharacterID(nil), charactersCoe5...)
	case model.GameCiv6:
		return append([]model.CharacterID(nil), charactersCiv6...)
	default:
		return nil
	}
}

// KnownGame reports whether the game id has a character set
func KnownGame(gameID model.GameID) bool {
	return gameID == model.GameCoe5 || gameID == model.GameCiv6
}

// Society derives the shared society value from the seed history.
//
// Every client computes this independently from the broadcast roster, so
// the chain must be bit-for-bit reproducible: plain float64 arithmetic,
// no platform-dependent rounding. The first seed maps directly onto the
// society list; each later seed is folded with the previous index through
// a fixed linear-congruential step and mapped into the indices excluding
// the previous one, so the same society never repeats twice in a row. The
// society of the last computed index is returned. An empty seed yields "".
func Society(seed []float64) string {
	if len(seed) == 0 {
		return ""
	}

	n := len(societies)
	prev := int(math.Floor(seed[0] * float64(n)))
	for i := 1; i < len(seed); i++ {
		hash := math.Mod(seed[i]*9301+float64(prev)*49297, 233280)
		normalized := hash / 233280

		// All indices except the previous one
		choices := n - 1
		pick := int(math.Floor(normalized * float64(choices)))
		if pick >= prev {
			pick++
		}
		prev = pick
	}

	return societies[prev]
}

// Societies returns the fixed society list
func Societies() []string {
	return append([]string(nil), societies...)
}
