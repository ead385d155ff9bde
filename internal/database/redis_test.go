package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckRateLimit_AllowsWithoutRedis(t *testing.T) {
	Redis = nil

	allowed, err := CheckRateLimit("comment:u1", 10, time.Minute)
	assert.NoError(t, err)
	assert.True(t, allowed)
}
