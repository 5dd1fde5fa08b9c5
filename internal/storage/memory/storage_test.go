package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fnstats/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestCreateAndListPlayers() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p2", EpicID: "epic-2"}))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.PlayerRef{
		{PlayerID: "p1", EpicID: "epic-1"},
		{PlayerID: "p2", EpicID: "epic-2"},
	}, players)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(players)
	s.Empty(players)
}

func (s *StorageSuite) TestCreateDuplicatePlayerFails() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))

	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "other"})
	s.ErrorIs(err, model.ErrPlayerExists)

	players, _ := s.storage.ListPlayers(s.ctx)
	s.Len(players, 1)
	s.Equal("epic-1", players[0].EpicID)
}

// Credential tests

func (s *StorageSuite) TestGetPasswordHashUnknownPlayer() {
	_, err := s.storage.GetPasswordHash(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPasswordHashLegacyRow() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))

	hash, err := s.storage.GetPasswordHash(s.ctx, "p1")
	s.Require().NoError(err)
	s.Nil(hash)
}

func (s *StorageSuite) TestSetAndGetPasswordHash() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))
	s.Require().NoError(s.storage.SetPasswordHash(s.ctx, "p1", "$2a$10$hash"))

	hash, err := s.storage.GetPasswordHash(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().NotNil(hash)
	s.Equal("$2a$10$hash", *hash)
}

func (s *StorageSuite) TestSetPasswordHashUnknownPlayer() {
	err := s.storage.SetPasswordHash(s.ctx, "nobody", "hash")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Stats tests

func (s *StorageSuite) TestStatsAreSeparateTables() {
	s.storage.AppendStats(model.Row{"PLAYER_ID": "p1", "WINS": int64(3)})
	s.storage.AppendStatsHistory(
		model.Row{"PLAYER_ID": "p1", "WINS": int64(1)},
		model.Row{"PLAYER_ID": "p1", "WINS": int64(2)},
	)

	stats, err := s.storage.ListStats(s.ctx)
	s.Require().NoError(err)
	s.Len(stats, 1)
	s.Equal(int64(3), stats[0]["WINS"])

	hist, err := s.storage.ListStatsHistory(s.ctx)
	s.Require().NoError(err)
	s.Len(hist, 2)
}

func (s *StorageSuite) TestListStatsReturnsCopies() {
	s.storage.AppendStats(model.Row{"WINS": int64(3)})

	stats, _ := s.storage.ListStats(s.ctx)
	stats[0]["WINS"] = int64(99)

	again, _ := s.storage.ListStats(s.ctx)
	s.Equal(int64(3), again[0]["WINS"])
}
