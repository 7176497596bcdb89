package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuditLogKeyMatchesRecordID(t *testing.T) {
	actor := uuid.New()
	now := time.Now().UTC()

	key, entry := newAuditLog(actor, "ad_submitted", "advertisement", "ad-123", now)

	assert.Equal(t, entry.ID.String(), key)
	require.NotNil(t, entry.ActorUserID)
	assert.Equal(t, actor, *entry.ActorUserID)
	assert.Equal(t, "user", entry.ActorType)
	assert.Equal(t, "ad_submitted", entry.Action)
	assert.Equal(t, "advertisement", entry.EntityType)
	require.NotNil(t, entry.EntityID)
	assert.Equal(t, "ad-123", *entry.EntityID)
	assert.Equal(t, now, entry.CreatedAt)
}

func TestNewAuditLogDistinctIDs(t *testing.T) {
	k1, e1 := newAuditLog(uuid.New(), "ad_submitted", "advertisement", "a", time.Now())
	k2, e2 := newAuditLog(uuid.New(), "ad_submitted", "advertisement", "b", time.Now())
	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, e1.ID, e2.ID)
}
