package history_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"validarfc/internal/validation/models"
)

type historyStore interface {
	Append(ctx context.Context, record models.Record) error
	ListPage(ctx context.Context, req models.PageRequest) (*models.Page, error)
}

// contractSuite holds the behaviour every backend must share. Backend test
// files embed it and provide newStore, which must return an empty store.
type contractSuite struct {
	suite.Suite
	newStore func(t *testing.T) historyStore
	store    historyStore
}

func (s *contractSuite) SetupTest() {
	s.store = s.newStore(s.T())
}

// base is truncated to microseconds because Postgres stores no finer.
var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func (s *contractSuite) appendAll(records ...models.Record) {
	ctx := context.Background()
	for _, r := range records {
		s.Require().NoError(s.store.Append(ctx, r))
	}
}

func (s *contractSuite) rfcs(items []models.Record) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.RFC)
	}
	return out
}

func (s *contractSuite) TestEmptyStore() {
	page, err := s.store.ListPage(context.Background(), models.PageRequest{Page: 1, PerPage: 20})
	s.Require().NoError(err)
	s.Equal(0, page.Total)
	s.NotNil(page.Items)
	s.Empty(page.Items)
}

func (s *contractSuite) TestNewestFirstPagination() {
	s.appendAll(
		models.Record{RFC: "AAA000000", IsValid: true, CreatedAt: base},
		models.Record{RFC: "BBB111111", IsValid: true, CreatedAt: base.Add(time.Second)},
		models.Record{RFC: "CCC222222", IsValid: true, CreatedAt: base.Add(2 * time.Second)},
	)
	ctx := context.Background()

	first, err := s.store.ListPage(ctx, models.PageRequest{Page: 1, PerPage: 2})
	s.Require().NoError(err)
	s.Equal(3, first.Total)
	s.Equal(1, first.Page)
	s.Equal(2, first.PerPage)
	s.Equal([]string{"CCC222222", "BBB111111"}, s.rfcs(first.Items))

	second, err := s.store.ListPage(ctx, models.PageRequest{Page: 2, PerPage: 2})
	s.Require().NoError(err)
	s.Equal(3, second.Total)
	s.Equal([]string{"AAA000000"}, s.rfcs(second.Items))

	beyond, err := s.store.ListPage(ctx, models.PageRequest{Page: 5, PerPage: 2})
	s.Require().NoError(err)
	s.Equal(3, beyond.Total)
	s.NotNil(beyond.Items)
	s.Empty(beyond.Items)
}

func (s *contractSuite) TestFarPastTheEndPageIsEmpty() {
	s.appendAll(
		models.Record{RFC: "AAA000000", IsValid: true, CreatedAt: base},
		models.Record{RFC: "BBB111111", IsValid: true, CreatedAt: base.Add(time.Second)},
		models.Record{RFC: "CCC222222", IsValid: true, CreatedAt: base.Add(2 * time.Second)},
	)
	ctx := context.Background()

	for _, req := range []models.PageRequest{
		models.PageRequest{Page: math.MaxInt, PerPage: 4}.Normalize(),
		{Page: 4611686018427387905, PerPage: 4},
		{Page: 4611686018427387904, PerPage: 4},
	} {
		page, err := s.store.ListPage(ctx, req)
		s.Require().NoError(err, "page %d", req.Page)
		s.Equal(3, page.Total, "page %d", req.Page)
		s.NotNil(page.Items)
		s.Empty(page.Items, "page %d", req.Page)
	}
}

func (s *contractSuite) TestPerPageLargerThanTotal() {
	s.appendAll(
		models.Record{RFC: "AAA000000", CreatedAt: base},
		models.Record{RFC: "BBB111111", CreatedAt: base.Add(time.Minute)},
	)

	page, err := s.store.ListPage(context.Background(), models.PageRequest{Page: 1, PerPage: 20})
	s.Require().NoError(err)
	s.Equal(2, page.Total)
	s.Len(page.Items, 2)
}

func (s *contractSuite) TestRoundTripsFields() {
	created := base.Add(1500 * time.Microsecond)
	s.appendAll(
		models.Record{RFC: "NOPE", IsValid: false, CreatedAt: created},
	)

	page, err := s.store.ListPage(context.Background(), models.PageRequest{Page: 1, PerPage: 1})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)

	got := page.Items[0]
	s.Equal("NOPE", got.RFC)
	s.False(got.IsValid)
	s.True(created.Equal(got.CreatedAt), "created_at %s != %s", got.CreatedAt, created)
	s.Equal(time.UTC, got.CreatedAt.Location())
}

func (s *contractSuite) TestDuplicatesAreKept() {
	s.appendAll(
		models.Record{RFC: "ABC123456", IsValid: true, CreatedAt: base},
		models.Record{RFC: "ABC123456", IsValid: true, CreatedAt: base.Add(time.Second)},
	)

	page, err := s.store.ListPage(context.Background(), models.PageRequest{Page: 1, PerPage: 10})
	s.Require().NoError(err)
	s.Equal(2, page.Total)
	s.Equal([]string{"ABC123456", "ABC123456"}, s.rfcs(page.Items))
}

func (s *contractSuite) TestEqualTimestampsNewestInsertFirst() {
	s.appendAll(
		models.Record{RFC: "FIRST0000", CreatedAt: base},
		models.Record{RFC: "SECOND000", CreatedAt: base},
	)

	page, err := s.store.ListPage(context.Background(), models.PageRequest{Page: 1, PerPage: 10})
	s.Require().NoError(err)
	s.Equal([]string{"SECOND000", "FIRST0000"}, s.rfcs(page.Items))
}
