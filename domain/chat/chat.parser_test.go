package chat

import (
	"nimbusBackend/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Run("SplitsOnSpaces", func(t *testing.T) {
		assert.Equal(t, []string{"create", "--ami=ami-123", "web01"}, Tokenize("create --ami=ami-123 web01"))
	})

	t.Run("KeepsQuotedSectionsTogether", func(t *testing.T) {
		tokens := Tokenize(`create --tags="env=prod,team=core ops" web01`)
		assert.Equal(t, []string{"create", "--tags=env=prod,team=core ops", "web01"}, tokens)
	})

	t.Run("CollapsesRepeatedSpaces", func(t *testing.T) {
		assert.Equal(t, []string{"reboot", "web01"}, Tokenize("  reboot   web01 "))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
	})
}

func TestParseCommand(t *testing.T) {
	t.Run("CreateWithOptions", func(t *testing.T) {
		request, err := ParseCommand("create", []string{"--ami=ami-123", "--size=20", "web01"})
		require.NoError(t, err)

		assert.Equal(t, ActionCreate, request.Action)
		assert.Equal(t, "web01", request.Name)
		assert.Equal(t, "ami-123", request.Parameters["ami"])
		assert.Equal(t, "20", request.Parameters["size"])
	})

	t.Run("NameBeforeOptions", func(t *testing.T) {
		request, err := ParseCommand("create", []string{"web01", "--ami=ami-123"})
		require.NoError(t, err)

		assert.Equal(t, "web01", request.Name)
		assert.Equal(t, "ami-123", request.Parameters["ami"])
	})

	t.Run("BareFlagBecomesBooleanSwitch", func(t *testing.T) {
		request, err := ParseCommand("create", []string{"--puppet", "web01"})
		require.NoError(t, err)

		assert.Equal(t, "true", request.Parameters["puppet"])
	})

	t.Run("UnsupportedAction", func(t *testing.T) {
		_, err := ParseCommand("delete", []string{"web01"})
		assert.ErrorIs(t, err, utils.ErrorUnsupportedAction)
	})

	t.Run("MissingInstanceName", func(t *testing.T) {
		_, err := ParseCommand("reboot", []string{})
		assert.ErrorIs(t, err, utils.ErrorMissingArgument)
	})

	t.Run("ListNeedsNoName", func(t *testing.T) {
		request, err := ParseCommand("list", []string{})
		require.NoError(t, err)

		assert.Equal(t, ActionList, request.Action)
		assert.Empty(t, request.Name)
	})
}

func TestParseTags(t *testing.T) {
	t.Run("MultipleEntries", func(t *testing.T) {
		tags, err := ParseTags("env=prod,team=core")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"env": "prod", "team": "core"}, tags)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		tags, err := ParseTags("env=")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"env": ""}, tags)
	})

	t.Run("MalformedEntry", func(t *testing.T) {
		_, err := ParseTags("env=prod,broken")
		assert.ErrorIs(t, err, utils.ErrorValidationError)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		tags, err := ParseTags("")
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}
