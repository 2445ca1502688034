/* bot_command_test.go
 * Contains unit tests for NewBot
 */

package bot

import (
	"testing"
	"time"

	"tournament-assistant/api/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region NewBot tests

func TestNewBot_Success(t *testing.T) {
	apiPtr := api.NewAPI(nil, time.Second)
	bot, err := NewBot("test_token", apiPtr, nil)

	require.NoError(t, err)
	assert.Equal(t, "test_token", bot.BotToken)
	assert.Same(t, apiPtr, bot.APIPtr)
	assert.NotNil(t, bot.limiter)
}

func TestNewBot_EmptyToken(t *testing.T) {
	_, err := NewBot("", api.NewAPI(nil, time.Second), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "botToken is required")
}

func TestNewBot_MissingAPI(t *testing.T) {
	_, err := NewBot("test_token", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiPtr is required")
}

// endregion
