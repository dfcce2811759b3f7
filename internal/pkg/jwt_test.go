package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParsePair(t *testing.T) {
	pair, err := GeneratePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "access", claims.Subject)

	rClaims, err := ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.EqualValues(t, 42, rClaims.UserID)
	assert.NotEmpty(t, rClaims.ID)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	pair, err := GeneratePair(7)
	require.NoError(t, err)

	// 两把密钥不同，拿错 token 过不了签名校验
	_, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestParseRefreshRejectsAccessToken(t *testing.T) {
	pair, err := GeneratePair(7)
	require.NoError(t, err)

	_, err = ParseRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	pair, err := GeneratePair(7)
	require.NoError(t, err)

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	_, err = ParseAccess(tampered)
	assert.Error(t, err)

	_, err = ParseAccess("not.a.token")
	assert.Error(t, err)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	oldSecret := AccessSecret
	AccessSecret = []byte("other-secret")
	pair, err := GeneratePair(7)
	AccessSecret = oldSecret
	require.NoError(t, err)

	_, err = ParseAccess(pair.AccessToken)
	assert.Error(t, err)
}
