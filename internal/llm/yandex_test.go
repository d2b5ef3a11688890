package llm

import (
	"testing"
	"time"

	"github.com/Morwran/yagpt"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// stubYandex returns a client whose IAM exchange hands out tok-1, tok-2, ...
// and whose clock is driven by the returned pointer.
func stubYandex(t *testing.T) (*YandexClient, *time.Time, *int, *error) {
	t.Helper()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	var failWith error

	c := NewYandex("y0_oauth", "b1g")
	c.now = func() time.Time { return now }
	c.newModel = func(string) (yagpt.YaGPTFace, error) { return nil, nil }
	c.exchange = func(oauth string) (string, error) {
		require.Equal(t, "y0_oauth", oauth)
		if failWith != nil {
			return "", failWith
		}
		calls++
		return "tok-" + string(rune('0'+calls)), nil
	}
	return c, &now, &calls, &failWith
}

func TestYandexSession_ReusesTokenWithinTTL(t *testing.T) {
	c, now, calls, _ := stubYandex(t)

	_, tok, err := c.session()
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	*now = now.Add(iamTokenTTL - time.Second)
	_, tok, err = c.session()
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	require.Equal(t, 1, *calls)
}

func TestYandexSession_RenewsExpiredToken(t *testing.T) {
	c, now, calls, _ := stubYandex(t)

	_, tok, err := c.session()
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	*now = now.Add(iamTokenTTL)
	_, tok, err = c.session()
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)

	*now = now.Add(12 * time.Hour)
	_, tok, err = c.session()
	require.NoError(t, err)
	require.Equal(t, "tok-3", tok)
	require.Equal(t, 3, *calls)
}

func TestYandexSession_FailedRenewalRetriesNextCall(t *testing.T) {
	c, now, calls, failWith := stubYandex(t)

	_, _, err := c.session()
	require.NoError(t, err)

	*now = now.Add(2 * iamTokenTTL)
	*failWith = errors.New("iam: unauthorized")
	_, tok, err := c.session()
	require.Error(t, err)
	require.Empty(t, tok)

	*failWith = nil
	_, tok, err = c.session()
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
	require.Equal(t, 2, *calls)
}
