package repository

import (
	"context"
	"testing"

	"cryptomarket/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrderingPreservesInputOrder(t *testing.T) {
	orderBy, notNull := BuildOrdering([]validate.OrderField{
		{Field: "currentPrice", Direction: "asc"},
		{Field: "id", Direction: "desc"},
	})
	assert.Equal(t, []string{"current_price asc", "id desc"}, orderBy)
	// id is always present, so only currentPrice needs the not-null guard
	assert.Equal(t, []string{"current_price"}, notNull)
}

func TestBuildOrderingEmpty(t *testing.T) {
	orderBy, notNull := BuildOrdering(nil)
	assert.Empty(t, orderBy)
	assert.Empty(t, notNull)
}

func TestBuildOrderingAllFieldsExceptIDGetNotNull(t *testing.T) {
	orders := []validate.OrderField{
		{Field: "id", Direction: "asc"},
		{Field: "name", Direction: "asc"},
		{Field: "marketCap", Direction: "desc"},
		{Field: "percentPriceChange24h", Direction: "asc"},
		{Field: "percentPriceChange7D", Direction: "desc"},
		{Field: "ath", Direction: "asc"},
		{Field: "atl", Direction: "desc"},
	}
	orderBy, notNull := BuildOrdering(orders)
	assert.Len(t, orderBy, 7)
	assert.Len(t, notNull, 6)
	assert.NotContains(t, notNull, "id")
}

func TestReplaceAllRoundTrip(t *testing.T) {
	repo := NewCryptoRepository(newTestDB(t))
	snapshot := sampleSnapshot()
	require.NoError(t, repo.ReplaceAll(context.Background(), snapshot))

	cryptos, info, err := repo.FindByFilter(validate.FilterCryptosInput{})
	require.NoError(t, err)
	assert.Len(t, cryptos, len(snapshot))
	assert.Equal(t, int64(len(snapshot)), info.Count)

	byID := map[string]bool{}
	for _, c := range cryptos {
		byID[c.ID] = true
	}
	for _, c := range snapshot {
		assert.True(t, byID[c.ID], "missing %s after round trip", c.ID)
	}
}

func TestReplaceAllIsIdempotent(t *testing.T) {
	repo := NewCryptoRepository(newTestDB(t))
	snapshot := sampleSnapshot()
	require.NoError(t, repo.ReplaceAll(context.Background(), snapshot))
	require.NoError(t, repo.ReplaceAll(context.Background(), snapshot))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(len(snapshot)), count)
}

func TestReplaceAllDropsStaleRows(t *testing.T) {
	repo := NewCryptoRepository(newTestDB(t))
	require.NoError(t, repo.ReplaceAll(context.Background(), sampleSnapshot()))
	require.NoError(t, repo.ReplaceAll(context.Background(), sampleSnapshot()[:1]))

	cryptos, _, err := repo.FindByFilter(validate.FilterCryptosInput{})
	require.NoError(t, err)
	require.Len(t, cryptos, 1)
	assert.Equal(t, "bitcoin", cryptos[0].ID)
}

func TestReplaceAllSkipsDuplicateSlugs(t *testing.T) {
	repo := NewCryptoRepository(newTestDB(t))
	snapshot := sampleSnapshot()
	snapshot = append(snapshot, snapshot[0]) // Provider glitch: same slug twice
	require.NoError(t, repo.ReplaceAll(context.Background(), snapshot))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestFindByFilterDefaultsAndWindow(t *testing.T) {
	repo := NewCryptoRepository(newTestDB(t))
	require.NoError(t, repo.ReplaceAll(context.Background(), sampleSnapshot()))

	_, info, err := repo.FindByFilter(validate.FilterCryptosInput{})
	require.NoError(t, err)
	assert.Equal(t, 100, info.Limit) // Default page size
	assert.Equal(t, 0, info.Offset)  // Default offset

	cryptos, info, err := repo.FindByFilter(validate.FilterCryptosInput{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, cryptos, 2)
	assert.Equal(t, 2, info.Limit)
	assert.Equal(t, 1, info.Offset)
	assert.Equal(t, int64(3), info.Count)
}

func TestFindByFilterExactMatch(t *testing.T) {
	repo := NewCryptoRepository(newTestDB(t))
	require.NoError(t, repo.ReplaceAll(context.Background(), sampleSnapshot()))

	id := "ethereum"
	cryptos, _, err := repo.FindByFilter(validate.FilterCryptosInput{ID: &id})
	require.NoError(t, err)
	require.Len(t, cryptos, 1)
	assert.Equal(t, "Ethereum", cryptos[0].Name)

	name := "Bitcoin"
	cryptos, _, err = repo.FindByFilter(validate.FilterCryptosInput{Name: &name})
	require.NoError(t, err)
	require.Len(t, cryptos, 1)
	assert.Equal(t, "bitcoin", cryptos[0].ID)
}

func TestFindOrderedSortsByInput(t *testing.T) {
	repo := NewCryptoRepository(newTestDB(t))
	require.NoError(t, repo.ReplaceAll(context.Background(), sampleSnapshot()))

	cryptos, _, err := repo.FindOrdered(validate.OrderCryptosInput{
		Orders: []validate.OrderField{{Field: "currentPrice", Direction: "asc"}},
	})
	require.NoError(t, err)
	require.Len(t, cryptos, 3)
	assert.Equal(t, "dogecoin", cryptos[0].ID)
	assert.Equal(t, "ethereum", cryptos[1].ID)
	assert.Equal(t, "bitcoin", cryptos[2].ID)
}

func TestFindOrderedEmptyOrderKeepsNaturalOrder(t *testing.T) {
	repo := NewCryptoRepository(newTestDB(t))
	require.NoError(t, repo.ReplaceAll(context.Background(), sampleSnapshot()))

	cryptos, info, err := repo.FindOrdered(validate.OrderCryptosInput{})
	require.NoError(t, err)
	assert.Len(t, cryptos, 3)
	assert.Equal(t, int64(3), info.Count)
}
