package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gridsnake/gridsnake/internal/model"
)

type StorageSuite struct {
	suite.Suite
	ctx     context.Context
	storage *Storage
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = New()
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) TestPlayerRoundTrip() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Casey",
		IsGuest:     true,
		CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player, got)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Casey"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "player-1"))

	_, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRegisteredPlayerUsernameIndex() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "casey",
		PasswordHash: "$2a$10$fakehash",
	}
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	byID, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp, byID)

	byUsername, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "casey")
	s.Require().NoError(err)
	s.Equal(rp, byUsername)

	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "someone-else")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSessionRoundTrip() {
	session := &model.GameSession{
		ID:      "SESSION1",
		OwnerID: "player-1",
		Mode:    model.ModeRunning,
		Grid:    model.NewGrid(10, 10),
		Snake:   model.NewSnake(model.Position{X: 5, Y: 5}, model.DirectionRight),
		Score:   7,
		Speed:   10,
		Tick:    42,
	}

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.Equal(session, got)

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "SESSION1"))
	_, err = s.storage.GetSession(s.ctx, "SESSION1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestTopSummariesOrdering() {
	scores := []int{3, 12, 7}
	for i, score := range scores {
		s.Require().NoError(s.storage.SaveSummary(s.ctx, &model.GameSummary{
			SessionID: model.SessionID(rune('A' + i)),
			PlayerID:  "player-1",
			Score:     score,
			Cause:     model.OutcomeWall,
		}))
	}

	top, err := s.storage.TopSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal(12, top[0].Score)
	s.Equal(7, top[1].Score)
	s.Equal(3, top[2].Score)
}

func (s *StorageSuite) TestTopSummariesLimit() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.storage.SaveSummary(s.ctx, &model.GameSummary{
			PlayerID: "player-1",
			Score:    i,
		}))
	}

	top, err := s.storage.TopSummaries(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(4, top[0].Score)
	s.Equal(3, top[1].Score)
}
