package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvaders/clubhub/internal/platform/cache"
	_ "github.com/solvaders/clubhub/testing"
)

func TestNewPingsTheServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := cache.New(context.Background(), mr.Addr())
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewReturnsClientWhenServerIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := cache.New(context.Background(), addr)
	require.Error(t, err)
	assert.NotNil(t, client, "callers degrade gracefully instead of crashing")
}
