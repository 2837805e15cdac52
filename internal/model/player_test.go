package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PlayerSuite struct {
	suite.Suite
}

func TestPlayerSuite(t *testing.T) {
	suite.Run(t, new(PlayerSuite))
}

func (s *PlayerSuite) samplePlayer() Player {
	return Player{
		ID:          "p1",
		Name:        "Alice",
		State:       StateChoosing,
		Locked:      &PlayerCharacter{ID: "baron", Amount: 1},
		Banned:      []CharacterID{"witch"},
		Skipped:     []PlayerCharacter{{ID: "druid", Amount: 2}},
		LoserBanned: []PlayerCharacter{{ID: "troll", Amount: 1}},
		Available:   []CharacterID{"pale", "kobold"},
		Seed:        []float64{0.5},
	}
}

func (s *PlayerSuite) TestCloneIsDeep() {
	p := s.samplePlayer()
	c := p.Clone()

	c.Locked.Amount = 99
	c.Banned[0] = "tampered"
	c.Skipped[0].Amount = 99
	c.LoserBanned[0].Amount = 99
	c.Available[0] = "tampered"
	c.Seed[0] = 0.99

	s.Equal(1, p.Locked.Amount)
	s.Equal(CharacterID("witch"), p.Banned[0])
	s.Equal(2, p.Skipped[0].Amount)
	s.Equal(1, p.LoserBanned[0].Amount)
	s.Equal(CharacterID("pale"), p.Available[0])
	s.Equal(0.5, p.Seed[0])
}

func (s *PlayerSuite) TestCloneNilLock() {
	p := s.samplePlayer()
	p.Locked = nil
	s.Nil(p.Clone().Locked)
}

func (s *PlayerSuite) TestLookupHelpers() {
	p := s.samplePlayer()

	s.True(p.HasBanned("witch"))
	s.False(p.HasBanned("baron"))

	s.True(p.HasAvailable("pale"))
	s.False(p.HasAvailable("witch"))

	s.Equal(2, p.SkippedAmount("druid"))
	s.Equal(0, p.SkippedAmount("baron"))

	s.Require().NotNil(p.LoserBannedEntry("troll"))
	s.Nil(p.LoserBannedEntry("baron"))
}

func (s *PlayerSuite) TestLoserBannedEntryIsMutable() {
	p := s.samplePlayer()

	entry := p.LoserBannedEntry("troll")
	s.Require().NotNil(entry)
	entry.Amount = 5

	s.Equal(5, p.LoserBanned[0].Amount)
}

func (s *PlayerSuite) TestFindPlayer() {
	players := []Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}

	s.Equal(0, FindPlayer(players, "p1"))
	s.Equal(1, FindPlayer(players, "p2"))
	s.Equal(-1, FindPlayer(players, "ghost"))

	s.Equal(1, FindPlayerByName(players, "Bob"))
	s.Equal(-1, FindPlayerByName(players, "Cara"))
}
