package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectConfig_Defaults(t *testing.T) {
	opts := ConnectConfig{URI: "mongodb://localhost:27017", Database: "storefront"}.clientOptions()

	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 10*time.Second, *opts.ConnectTimeout)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 5*time.Second, *opts.ServerSelectionTimeout)
	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(50), *opts.MaxPoolSize)
	require.NotNil(t, opts.MinPoolSize)
	assert.Equal(t, uint64(5), *opts.MinPoolSize)
}

func TestConnectConfig_Overrides(t *testing.T) {
	opts := ConnectConfig{
		URI:            "mongodb://localhost:27017",
		Database:       "storefront",
		ConnectTimeout: 2 * time.Second,
		SelectTimeout:  time.Second,
		MaxPoolSize:    200,
		MinPoolSize:    20,
	}.clientOptions()

	assert.Equal(t, 2*time.Second, *opts.ConnectTimeout)
	assert.Equal(t, time.Second, *opts.ServerSelectionTimeout)
	assert.Equal(t, uint64(200), *opts.MaxPoolSize)
	assert.Equal(t, uint64(20), *opts.MinPoolSize)
}
