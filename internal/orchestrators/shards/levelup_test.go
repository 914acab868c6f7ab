package shards_test

import (
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/orchestrators/shards"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/loadout"
	"github.com/KirkDiggler/rpg-shards/internal/testutils"
)

func (s *OrchestratorTestSuite) levelUpService() shards.Service {
	cfg := *s.cfg
	cfg.LevelUpMessage = "Gained # shard slots!"
	svc, err := shards.New(&cfg)
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorTestSuite) TestLevelUpGrantsSlots() {
	out, err := s.levelUpService().LevelUp(s.ctx, &shards.LevelUpInput{
		CharacterID: testutils.MageActor,
		FromLevel:   1,
		ToLevel:     3,
	})

	s.Require().NoError(err)
	s.Equal(3, out.Requested)
	s.Equal(3, out.Applied)
	s.Empty(out.Evicted)
	s.Equal(3, out.Loadout.SlotCount)
	s.Equal("Gained 3 shard slots!", out.Message)

	stored, err := s.loadoutRepo.Get(s.ctx, loadout.GetInput{CharacterID: testutils.MageActor})
	s.Require().NoError(err)
	s.Equal(3, stored.Loadout.SlotCount())
	s.Equal(testutils.MageOrbImage, stored.Loadout.OrbImageID)
}

func (s *OrchestratorTestSuite) TestLevelUpClampsEachGrant() {
	s.resize(testutils.MageActor, 3)

	out, err := s.levelUpService().LevelUp(s.ctx, &shards.LevelUpInput{
		CharacterID: testutils.MageActor,
		FromLevel:   1,
		ToLevel:     3,
	})

	s.Require().NoError(err)
	s.Equal(3, out.Requested)
	s.Equal(1, out.Applied)
	s.Equal(testutils.MaxSlots, out.Loadout.SlotCount)
	s.Equal("Gained 1 shard slots!", out.Message)
}

func (s *OrchestratorTestSuite) TestLevelUpNegativeGrantReturnsShard() {
	s.resize(testutils.MageActor, 2)
	s.equip(testutils.MageActor, 1, testutils.FireSword)
	s.Equal(1, s.count(testutils.FireSword))

	out, err := s.levelUpService().LevelUp(s.ctx, &shards.LevelUpInput{
		CharacterID: testutils.MageActor,
		FromLevel:   4,
		ToLevel:     5,
	})

	s.Require().NoError(err)
	s.Equal(-1, out.Requested)
	s.Equal(-1, out.Applied)
	s.Equal([]entities.ItemRef{testutils.FireSword}, out.Evicted)
	s.Equal(1, out.Loadout.SlotCount)
	s.Empty(out.Message)
	s.Equal(2, s.count(testutils.FireSword))
}

func (s *OrchestratorTestSuite) TestLevelUpWithoutGrantsStoresNothing() {
	out, err := s.levelUpService().LevelUp(s.ctx, &shards.LevelUpInput{
		CharacterID: testActor,
		ClassID:     testutils.ClassFighter,
		FromLevel:   1,
		ToLevel:     10,
	})

	s.Require().NoError(err)
	s.Equal(0, out.Requested)
	s.Equal(0, out.Applied)
	s.Equal(0, out.Loadout.SlotCount)
	s.Empty(out.Message)

	_, err = s.loadoutRepo.Get(s.ctx, loadout.GetInput{CharacterID: testActor})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestLevelUpRejectsBadInput() {
	testCases := []struct {
		name  string
		input *shards.LevelUpInput
		check func(error) bool
	}{
		{name: "nil input", input: nil, check: errors.IsInvalidArgument},
		{
			name:  "no catalog class",
			input: &shards.LevelUpInput{CharacterID: testActor, FromLevel: 1, ToLevel: 2},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "unknown class",
			input: &shards.LevelUpInput{CharacterID: testActor, ClassID: 99, FromLevel: 1, ToLevel: 2},
			check: errors.IsNotFound,
		},
		{
			name:  "levels go down",
			input: &shards.LevelUpInput{CharacterID: testutils.MageActor, FromLevel: 3, ToLevel: 2},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "level zero",
			input: &shards.LevelUpInput{CharacterID: testutils.MageActor, FromLevel: 0, ToLevel: 2},
			check: errors.IsInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.svc.LevelUp(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err), "unexpected error %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestNewLoadoutTakesActorOrbImage() {
	mage, err := s.svc.GetLoadout(s.ctx, &shards.GetLoadoutInput{CharacterID: testutils.MageActor})
	s.Require().NoError(err)
	s.Equal(testutils.MageOrbImage, mage.Loadout.OrbImageID)

	plain, err := s.svc.GetLoadout(s.ctx, &shards.GetLoadoutInput{CharacterID: testActor})
	s.Require().NoError(err)
	s.Equal(0, plain.Loadout.OrbImageID)

	_, err = s.svc.SetOrbImage(s.ctx, &shards.SetOrbImageInput{CharacterID: testutils.MageActor, ImageID: 5})
	s.Require().NoError(err)
	mage, err = s.svc.GetLoadout(s.ctx, &shards.GetLoadoutInput{CharacterID: testutils.MageActor})
	s.Require().NoError(err)
	s.Equal(5, mage.Loadout.OrbImageID)
}
