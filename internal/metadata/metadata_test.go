package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCanonicalShape(t *testing.T) {
	m := Metadata{
		Version:     1,
		CreatedAt:   1700000000,
		Author:      "alice",
		ContentType: "text/plain",
	}

	data, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t,
		`{"version":1,"created_at":1700000000,"expires_at":null,"author":"alice","content_type":"text/plain"}`,
		string(data))
}

func TestEncodeWithExpiry(t *testing.T) {
	expires := uint64(1800000000)
	m := Metadata{
		Version:     1,
		CreatedAt:   1700000000,
		ExpiresAt:   &expires,
		Author:      "bob",
		ContentType: "image/png",
	}

	data, err := m.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.ExpiresAt)
	assert.Equal(t, expires, *decoded.ExpiresAt)
}

func TestNewStampsCurrentTime(t *testing.T) {
	before := uint64(time.Now().Unix())
	m := New("alice", "text/plain")
	after := uint64(time.Now().Unix())

	assert.Equal(t, CurrentVersion, m.Version)
	assert.Equal(t, "alice", m.Author)
	assert.Equal(t, "text/plain", m.ContentType)
	assert.Nil(t, m.ExpiresAt)
	assert.GreaterOrEqual(t, m.CreatedAt, before)
	assert.LessOrEqual(t, m.CreatedAt, after)
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version":2,"created_at":1,"expires_at":null,"author":"a","content_type":"text/plain"}`))
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}
