package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fnstats/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestCreateAndListPlayers() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p2", EpicID: "epic-2"}))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.PlayerRef{
		{PlayerID: "p1", EpicID: "epic-1"},
		{PlayerID: "p2", EpicID: "epic-2"},
	}, players)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestCreateDuplicatePlayerFails() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))

	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "other"})
	s.ErrorIs(err, model.ErrPlayerExists)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.PlayerRef{{PlayerID: "p1", EpicID: "epic-1"}}, players)
}

func (s *StorageSuite) TestPlayerStoredAsHash() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))

	s.Equal("epic-1", s.mini.HGet("fnstats:player:p1", "epic_id"))
}

func (s *StorageSuite) TestCreateFailureLeavesNoPartialPlayer() {
	// Index key of the wrong type makes the create fail
	s.Require().NoError(s.mini.Set("fnstats:players", "not-a-list"))

	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"})
	s.Require().Error(err)
	s.False(s.mini.Exists("fnstats:player:p1"))

	s.mini.Del("fnstats:players")
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.PlayerRef{{PlayerID: "p1", EpicID: "epic-1"}}, players)
}

func (s *StorageSuite) TestDuplicateCreateDoesNotGrowIndex() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))
	s.Require().Error(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-2"}))

	ids, err := s.mini.List("fnstats:players")
	s.Require().NoError(err)
	s.Equal([]string{"p1"}, ids)
	s.Equal("epic-1", s.mini.HGet("fnstats:player:p1", "epic_id"))
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

func (s *StorageSuite) TestCreateWithPasswordHash() {
	hash := "$2a$10$abc"
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1", PasswordHash: &hash}))

	got, err := s.storage.GetPasswordHash(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(hash, *got)
}

func (s *StorageSuite) TestSetPasswordHash() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", EpicID: "epic-1"}))
	s.Require().NoError(s.storage.SetPasswordHash(s.ctx, "p1", "$2a$10$xyz"))

	got, err := s.storage.GetPasswordHash(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("$2a$10$xyz", *got)
}

func (s *StorageSuite) TestSetPasswordHashUnknownPlayer() {
	err := s.storage.SetPasswordHash(s.ctx, "nobody", "hash")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.False(s.mini.Exists("fnstats:player:nobody"))
}

// Stats tests

func (s *StorageSuite) TestAppendAndListStats() {
	s.Require().NoError(s.storage.AppendStats(s.ctx,
		model.Row{"PLAYER_ID": "p1", "WINS": 3},
		model.Row{"PLAYER_ID": "p2", "WINS": 5},
	))

	rows, err := s.storage.ListStats(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("p1", rows[0]["PLAYER_ID"])
	s.Equal(json.Number("3"), rows[0]["WINS"])
	s.Equal(json.Number("5"), rows[1]["WINS"])
}

func (s *StorageSuite) TestStatsHistoryIsSeparate() {
	s.Require().NoError(s.storage.AppendStatsHistory(s.ctx, model.Row{"PLAYER_ID": "p1"}))

	stats, err := s.storage.ListStats(s.ctx)
	s.Require().NoError(err)
	s.Empty(stats)

	hist, err := s.storage.ListStatsHistory(s.ctx)
	s.Require().NoError(err)
	s.Len(hist, 1)
}

func (s *StorageSuite) TestListStatsCorruptRow() {
	_, err := s.mini.RPush("fnstats:stats", "not json")
	s.Require().NoError(err)

	_, err = s.storage.ListStats(s.ctx)
	s.Error(err)
}
