package cryptox

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		a, err := GenerateToken(size)
		require.NoError(t, err)
		b, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	}

	_, err := GenerateToken(0)
	require.Error(t, err)
	_, err = GenerateToken(-1)
	require.Error(t, err)
}

func TestBackupCodes(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z2-7]{5}-[A-Z2-7]{5}$`)

	seen := map[string]bool{}
	for range 50 {
		code, err := GenerateBackupCode()
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
		require.False(t, seen[code])
		seen[code] = true
	}

	t.Run("normalize", func(t *testing.T) {
		require.Equal(t, "ABCDE-FGHIJ", NormalizeBackupCode(" abcde-fghij "))
		require.Equal(t, "ABCDE-FGHIJ", NormalizeBackupCode("abcdefghij"))
		require.Equal(t, "ABCDE-FGHIJ", NormalizeBackupCode("ABCDE FGHIJ"))
	})
}

func TestFingerprintToken(t *testing.T) {
	require.Equal(t, FingerprintToken("abc"), FingerprintToken("abc"))
	require.NotEqual(t, FingerprintToken("abc"), FingerprintToken("abd"))
	require.Len(t, FingerprintToken("abc"), 43)
}
