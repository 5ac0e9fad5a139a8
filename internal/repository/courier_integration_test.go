//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/repository"
)

type CourierRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	repo *repository.CourierRepo
}

func (s *CourierRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	s.repo = repository.NewCourierRepo(tcPool)
}

func (s *CourierRepositorySuite) SetupTest() {
	s.Require().NoError(truncateAll(s.ctx))
}

func (s *CourierRepositorySuite) TestUpsertAndGet() {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.UpsertCourier(s.ctx, domain.Courier{
		ID: "c1", Name: "Ram", Status: domain.CourierAvailable, UpdatedAt: at,
	}))

	got, err := s.repo.GetCourier(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("Ram", got.Name)
	s.Equal(domain.CourierAvailable, got.Status)
	s.True(got.UpdatedAt.Equal(at))

	// повторный upsert перезаписывает
	s.Require().NoError(s.repo.UpsertCourier(s.ctx, domain.Courier{
		ID: "c1", Name: "Ram B.", Status: domain.CourierPaused, UpdatedAt: at.Add(time.Minute),
	}))
	got, err = s.repo.GetCourier(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("Ram B.", got.Name)
	s.Equal(domain.CourierPaused, got.Status)
}

func (s *CourierRepositorySuite) TestGetNotFound() {
	_, err := s.repo.GetCourier(s.ctx, "ghost")
	s.Require().ErrorIs(err, apperr.ErrNotFound)
}

func (s *CourierRepositorySuite) TestSetStatus() {
	s.Require().NoError(s.repo.UpsertCourier(s.ctx, domain.Courier{ID: "c1", Status: domain.CourierAvailable, UpdatedAt: time.Now()}))

	s.Require().NoError(s.repo.SetCourierStatus(s.ctx, "c1", domain.CourierBusy))
	got, err := s.repo.GetCourier(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal(domain.CourierBusy, got.Status)

	s.Require().ErrorIs(s.repo.SetCourierStatus(s.ctx, "ghost", domain.CourierBusy), apperr.ErrNotFound)
}

func (s *CourierRepositorySuite) TestInvalidStatusIsRejectedByTheSchema() {
	err := s.repo.UpsertCourier(s.ctx, domain.Courier{ID: "c1", Status: "sleeping", UpdatedAt: time.Now()})
	s.Require().Error(err)
}

func (s *CourierRepositorySuite) TestGet_ContextCanceled_ReturnsError() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.repo.GetCourier(ctx, "c1")
	s.Require().Error(err)
}

func TestCourierRepositorySuite(t *testing.T) {
	suite.Run(t, new(CourierRepositorySuite))
}
