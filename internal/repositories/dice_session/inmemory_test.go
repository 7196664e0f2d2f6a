package dicesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/coc-api/internal/errors"
	mockclock "github.com/KirkDiggler/coc-api/internal/pkg/clock/mock"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
)

type InMemoryTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	clock *mockclock.MockClock
	repo  *dicesession.InMemoryRepository
	ctx   context.Context
	now   time.Time
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryTestSuite))
}

func (s *InMemoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clock = mockclock.NewMockClock(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(1925, time.October, 31, 12, 0, 0, 0, time.UTC)

	repo, err := dicesession.NewInMemory(&dicesession.Config{Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *InMemoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *InMemoryTestSuite) roll(id string, total int32) dicesession.DiceRoll {
	return dicesession.DiceRoll{
		RollID:    id,
		Notation:  "3D6",
		Dice:      []int32{total - 2, 1, 1},
		Total:     total,
		DiceTotal: total,
	}
}

func (s *InMemoryTestSuite) TestConfigValidation() {
	_, err := dicesession.NewInMemory(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = dicesession.NewInMemory(&dicesession.Config{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *InMemoryTestSuite) TestCreateAndGet() {
	s.clock.EXPECT().Now().Return(s.now).AnyTimes()

	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "inv_1",
		Context:  "characteristics",
		Rolls:    []dicesession.DiceRoll{s.roll("r1", 11)},
		TTL:      time.Minute,
	})
	s.Require().NoError(err)
	s.Assert().Equal(s.now, created.Session.CreatedAt)
	s.Assert().Equal(s.now.Add(time.Minute), created.Session.ExpiresAt)

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "inv_1", Context: "characteristics"})
	s.Require().NoError(err)
	s.Require().Len(got.Session.Rolls, 1)
	s.Assert().Equal("r1", got.Session.Rolls[0].RollID)

	// callers get copies
	got.Session.Rolls[0].Dice[0] = 99
	again, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "inv_1", Context: "characteristics"})
	s.Require().NoError(err)
	s.Assert().Equal(int32(9), again.Session.Rolls[0].Dice[0])
}

func (s *InMemoryTestSuite) TestDefaultTTL() {
	s.clock.EXPECT().Now().Return(s.now)

	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "inv_1", Context: "luck"})
	s.Require().NoError(err)
	s.Assert().Equal(s.now.Add(dicesession.DefaultTTL), created.Session.ExpiresAt)
}

func (s *InMemoryTestSuite) TestExpiredSessionIsNotFound() {
	gomock.InOrder(
		s.clock.EXPECT().Now().Return(s.now),
		s.clock.EXPECT().Now().Return(s.now.Add(2*time.Minute)),
	)

	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "inv_1", Context: "sanity", TTL: time.Minute})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "inv_1", Context: "sanity"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestUpdate() {
	s.clock.EXPECT().Now().Return(s.now).AnyTimes()

	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "inv_1",
		Context:  "combat",
		Rolls:    []dicesession.DiceRoll{s.roll("r1", 10)},
	})
	s.Require().NoError(err)

	session := created.Session
	session.Rolls = append(session.Rolls, s.roll("r2", 12))
	s.Require().NoError(s.repo.Update(s.ctx, session))

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "inv_1", Context: "combat"})
	s.Require().NoError(err)
	s.Assert().Len(got.Session.Rolls, 2)
	s.Assert().Equal(created.Session.ExpiresAt, got.Session.ExpiresAt)
}

func (s *InMemoryTestSuite) TestUpdateMissing() {
	s.clock.EXPECT().Now().Return(s.now).AnyTimes()

	err := s.repo.Update(s.ctx, &dicesession.DiceSession{EntityID: "inv_1", Context: "combat"})
	s.Assert().True(errors.IsNotFound(err))

	err = s.repo.Update(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *InMemoryTestSuite) TestDelete() {
	s.clock.EXPECT().Now().Return(s.now).AnyTimes()

	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "inv_1",
		Context:  "combat",
		Rolls:    []dicesession.DiceRoll{s.roll("r1", 10), s.roll("r2", 7)},
	})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "inv_1", Context: "combat"})
	s.Require().NoError(err)
	s.Assert().Equal(int32(2), out.RollsDeleted)

	_, err = s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "inv_1", Context: "combat"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestKeyValidation() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{Context: "combat"})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "inv_1"})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, dicesession.DeleteInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}
