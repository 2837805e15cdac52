package view

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nlebedev/chardraft/internal/model"
)

type ProjectorSuite struct {
	suite.Suite
	catalog []model.CharacterID
}

func TestProjectorSuite(t *testing.T) {
	suite.Run(t, new(ProjectorSuite))
}

func (s *ProjectorSuite) SetupTest() {
	s.catalog = []model.CharacterID{"baron", "witch", "druid", "troll"}
}

func (s *ProjectorSuite) newPlayer(id, name string, state model.PlayerState) model.Player {
	return model.Player{
		ID:          model.PlayerID(id),
		Name:        name,
		Color:       "red",
		State:       state,
		Banned:      []model.CharacterID{},
		Skipped:     []model.PlayerCharacter{},
		LoserBanned: []model.PlayerCharacter{},
		Available:   []model.CharacterID{},
	}
}

func (s *ProjectorSuite) find(characters []model.Character, id model.CharacterID) model.Character {
	for _, c := range characters {
		if c.ID == id {
			return c
		}
	}
	s.FailNowf("character missing", "no %s in projection", id)
	return model.Character{}
}

func (s *ProjectorSuite) TestProjectionFollowsCatalogOrder() {
	characters := Project(s.catalog, nil, nil, model.DraftParams{})
	s.Require().Len(characters, 4)
	for i, id := range s.catalog {
		s.Equal(id, characters[i].ID)
	}
}

func (s *ProjectorSuite) TestNilViewerSeesEverythingDisabled() {
	players := []model.Player{s.newPlayer("p1", "Alice", model.StateChoosing)}

	characters := Project(s.catalog, players, nil, model.DraftParams{})
	for _, c := range characters {
		s.True(c.Disabled, "character %s", c.ID)
	}
}

func (s *ProjectorSuite) TestLockAndBanAttribution() {
	alice := s.newPlayer("p1", "Alice", model.StateChoosing)
	alice.Locked = &model.PlayerCharacter{ID: "baron", Amount: 1}
	bob := s.newPlayer("p2", "Bob", model.StateWaiting)
	bob.Banned = []model.CharacterID{"witch"}
	players := []model.Player{alice, bob}

	characters := Project(s.catalog, players, &alice, model.DraftParams{})

	baron := s.find(characters, "baron")
	s.Require().NotNil(baron.LockedBy)
	s.Equal(model.PlayerID("p1"), baron.LockedBy.ID)
	s.Equal("Alice", baron.LockedBy.Name)

	witch := s.find(characters, "witch")
	s.Require().NotNil(witch.BannedBy)
	s.Equal(model.PlayerID("p2"), witch.BannedBy.ID)
	s.True(witch.Disabled)
}

func (s *ProjectorSuite) TestOwnLockStaysSelectable() {
	alice := s.newPlayer("p1", "Alice", model.StateChoosing)
	alice.Locked = &model.PlayerCharacter{ID: "baron", Amount: 0}
	players := []model.Player{alice}

	characters := Project(s.catalog, players, &alice, model.DraftParams{Repick: 1})
	s.False(s.find(characters, "baron").Disabled)
}

func (s *ProjectorSuite) TestRivalLockDisables() {
	alice := s.newPlayer("p1", "Alice", model.StateChoosing)
	bob := s.newPlayer("p2", "Bob", model.StateLocked)
	bob.Locked = &model.PlayerCharacter{ID: "baron", Amount: 1}
	players := []model.Player{alice, bob}

	characters := Project(s.catalog, players, &alice, model.DraftParams{})
	s.True(s.find(characters, "baron").Disabled)
}

func (s *ProjectorSuite) TestSkipHistoryShowsWasLockedBy() {
	alice := s.newPlayer("p1", "Alice", model.StateChoosing)
	alice.Skipped = []model.PlayerCharacter{{ID: "witch", Amount: 2}}
	players := []model.Player{alice}

	characters := Project(s.catalog, players, &alice, model.DraftParams{})
	witch := s.find(characters, "witch")
	s.Require().Len(witch.WasLockedBy, 1)
	s.Equal(2, witch.WasLockedBy[0].Amount)
}

func (s *ProjectorSuite) TestRepickBudgetExhausted() {
	alice := s.newPlayer("p1", "Alice", model.StateChoosing)
	alice.Skipped = []model.PlayerCharacter{{ID: "witch", Amount: 2}}
	players := []model.Player{alice}

	characters := Project(s.catalog, players, &alice, model.DraftParams{Repick: 2})
	s.True(s.find(characters, "witch").Disabled)
	s.False(s.find(characters, "baron").Disabled)
}

func (s *ProjectorSuite) TestRandomOfferRestrictsChoices() {
	alice := s.newPlayer("p1", "Alice", model.StateChoosing)
	alice.Available = []model.CharacterID{"druid"}
	players := []model.Player{alice}

	characters := Project(s.catalog, players, &alice, model.DraftParams{Random: 1})
	s.False(s.find(characters, "druid").Disabled)
	s.True(s.find(characters, "baron").Disabled)

	druid := s.find(characters, "druid")
	s.Require().Len(druid.AvailableFor, 1)
	s.Equal(model.PlayerID("p1"), druid.AvailableFor[0].ID)
}

func (s *ProjectorSuite) TestLoserBanDisablesOwnPick() {
	alice := s.newPlayer("p1", "Alice", model.StateChoosing)
	alice.LoserBanned = []model.PlayerCharacter{{ID: "troll", Amount: 2}}
	players := []model.Player{alice}

	characters := Project(s.catalog, players, &alice, model.DraftParams{})
	troll := s.find(characters, "troll")
	s.True(troll.Disabled)
	s.Require().NotNil(troll.UserLoserBanned)
	s.Equal(2, troll.UserLoserBanned.Amount)
	s.Require().Len(troll.LoserBannedFor, 1)
}

func (s *ProjectorSuite) TestBanPhaseIgnoresOfferAndLoserBans() {
	alice := s.newPlayer("p1", "Alice", model.StateBanning)
	alice.LoserBanned = []model.PlayerCharacter{{ID: "troll", Amount: 2}}
	alice.Available = []model.CharacterID{}
	players := []model.Player{alice}

	characters := Project(s.catalog, players, &alice, model.DraftParams{Random: 2})
	// During banning any unbanned, unlocked character is fair game
	s.False(s.find(characters, "troll").Disabled)
	s.False(s.find(characters, "baron").Disabled)
}

func (s *ProjectorSuite) TestWaitingViewerCannotAct() {
	alice := s.newPlayer("p1", "Alice", model.StateWaiting)
	players := []model.Player{alice}

	characters := Project(s.catalog, players, &alice, model.DraftParams{})
	for _, c := range characters {
		s.True(c.Disabled)
	}
}
