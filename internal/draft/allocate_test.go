package draft

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nlebedev/chardraft/internal/dependencies/mocks"
	"github.com/nlebedev/chardraft/internal/model"
)

// The mock random returns 0 from every un-queued Intn call, which turns
// the shuffle into a left rotation by one: [a b c d] becomes [b c d a].

type AllocateSuite struct {
	suite.Suite
	random *mocks.MockRandom
}

func TestAllocateSuite(t *testing.T) {
	suite.Run(t, new(AllocateSuite))
}

func (s *AllocateSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
}

func (s *AllocateSuite) newPlayer(id string) model.Player {
	return model.Player{
		ID:          model.PlayerID(id),
		State:       model.StateWaiting,
		Banned:      []model.CharacterID{},
		Skipped:     []model.PlayerCharacter{},
		LoserBanned: []model.PlayerCharacter{},
		Available:   []model.CharacterID{},
	}
}

func (s *AllocateSuite) TestDealsDisjointOffers() {
	players := []model.Player{s.newPlayer("p1"), s.newPlayer("p2")}
	candidates := []model.CharacterID{"a", "b", "c", "d"}

	err := allocate(s.random, players, candidates, model.DraftParams{Random: 2})
	s.Require().NoError(err)

	s.Equal([]model.CharacterID{"b", "c"}, players[0].Available)
	s.Equal([]model.CharacterID{"d", "a"}, players[1].Available)
}

func (s *AllocateSuite) TestInsufficientPool() {
	players := []model.Player{s.newPlayer("p1"), s.newPlayer("p2")}
	candidates := []model.CharacterID{"a", "b", "c"}

	err := allocate(s.random, players, candidates, model.DraftParams{Random: 2})
	s.ErrorIs(err, model.ErrInsufficientPool)
	s.Empty(players[0].Available)
	s.Empty(players[1].Available)
}

func (s *AllocateSuite) TestBansShrinkThePool() {
	players := []model.Player{s.newPlayer("p1"), s.newPlayer("p2")}
	players[0].Banned = []model.CharacterID{"a"}
	candidates := []model.CharacterID{"a", "b", "c", "d"}

	err := allocate(s.random, players, candidates, model.DraftParams{Random: 2})
	s.ErrorIs(err, model.ErrInsufficientPool)
}

func (s *AllocateSuite) TestBannedCharactersNeverOffered() {
	players := []model.Player{s.newPlayer("p1"), s.newPlayer("p2")}
	players[1].Banned = []model.CharacterID{"a", "b"}
	candidates := []model.CharacterID{"a", "b", "c", "d", "e", "f"}

	err := allocate(s.random, players, candidates, model.DraftParams{Random: 2})
	s.Require().NoError(err)

	for _, p := range players {
		s.NotContains(p.Available, model.CharacterID("a"))
		s.NotContains(p.Available, model.CharacterID("b"))
	}
}

func (s *AllocateSuite) TestLoserSlotsShrinkOffer() {
	players := []model.Player{s.newPlayer("p1"), s.newPlayer("p2")}
	players[0].LoserSlots = 2
	candidates := []model.CharacterID{"a", "b", "c", "d", "e", "f"}

	err := allocate(s.random, players, candidates, model.DraftParams{Random: 3})
	s.Require().NoError(err)

	// 3 - 2 penalty slots, floored at one offer
	s.Len(players[0].Available, 1)
	s.Len(players[1].Available, 3)
}

func (s *AllocateSuite) TestOfferNeverBelowOne() {
	players := []model.Player{s.newPlayer("p1")}
	players[0].LoserSlots = 5
	candidates := []model.CharacterID{"a", "b"}

	err := allocate(s.random, players, candidates, model.DraftParams{Random: 2})
	s.Require().NoError(err)
	s.Len(players[0].Available, 1)
}

func (s *AllocateSuite) TestLoserBannedAvoidedWhenPossible() {
	players := []model.Player{s.newPlayer("p1"), s.newPlayer("p2")}
	// Rotation yields pool [b c d a]; p1 skips their loser-banned "b"
	players[0].LoserBanned = []model.PlayerCharacter{{ID: "b", Amount: 1}}
	candidates := []model.CharacterID{"a", "b", "c", "d"}

	err := allocate(s.random, players, candidates, model.DraftParams{Random: 2})
	s.Require().NoError(err)

	s.Equal([]model.CharacterID{"c", "d"}, players[0].Available)
	s.Equal([]model.CharacterID{"b", "a"}, players[1].Available)
}

func (s *AllocateSuite) TestLoserBanIgnoredWhenPoolRunsDry() {
	players := []model.Player{s.newPlayer("p1")}
	players[0].LoserBanned = []model.PlayerCharacter{
		{ID: "a", Amount: 1}, {ID: "b", Amount: 1},
	}
	candidates := []model.CharacterID{"a", "b"}

	err := allocate(s.random, players, candidates, model.DraftParams{Random: 2})
	s.Require().NoError(err)

	// Both characters are penalized, so the fallback deals them anyway
	s.Len(players[0].Available, 2)
	s.ElementsMatch([]model.CharacterID{"a", "b"}, players[0].Available)
}
