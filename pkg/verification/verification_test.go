package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestIssuer() *Issuer {
	return &Issuer{TTL: DefaultTTL, MaxAttempts: DefaultMaxAttempts, Cost: bcrypt.MinCost}
}

func TestIssue(t *testing.T) {
	issuer := newTestIssuer()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	issued, err := issuer.Issue(now)
	require.NoError(t, err)

	assert.Len(t, issued.Code, CodeLength)
	for _, r := range issued.Code {
		assert.True(t, r >= '0' && r <= '9')
	}
	assert.NotContains(t, issued.Hash, issued.Code)
	assert.Equal(t, now.Add(10*time.Minute), issued.ExpiresAt)
}

func TestIssueWithGenerator(t *testing.T) {
	issuer := newTestIssuer()
	issuer.Generate = func() (string, error) { return "482913", nil }

	issued, err := issuer.Issue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, "482913", issued.Code)

	ok, err := issuer.Matches(issued.Hash, "482913")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatches(t *testing.T) {
	issuer := newTestIssuer()
	issued, err := issuer.Issue(time.Now())
	require.NoError(t, err)

	t.Run("Correct Code", func(t *testing.T) {
		ok, err := issuer.Matches(issued.Hash, issued.Code)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Wrong Code", func(t *testing.T) {
		wrong := "000000"
		if issued.Code == wrong {
			wrong = "111111"
		}
		ok, err := issuer.Matches(issued.Hash, wrong)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Cleared Hash", func(t *testing.T) {
		ok, err := issuer.Matches("", issued.Code)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Wrong Length", func(t *testing.T) {
		ok, err := issuer.Matches(issued.Hash, "12345")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestExhausted(t *testing.T) {
	issuer := newTestIssuer()
	assert.False(t, issuer.Exhausted(4))
	assert.True(t, issuer.Exhausted(5))
}
