package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimension_KnownModels(t *testing.T) {
	assert.Equal(t, 1536, Dimension("text-embedding-3-small"))
	assert.Equal(t, 3072, Dimension("text-embedding-3-large"))
	assert.Equal(t, 1536, Dimension("text-embedding-ada-002"))
}

func TestDimension_UnknownModelDefaults(t *testing.T) {
	assert.Equal(t, 1536, Dimension("some-future-model"))
}

func TestNewClient_RejectsEmptyKey(t *testing.T) {
	_, err := NewClient("", "")
	assert.Error(t, err)
}

func TestNewClient_RejectsBadProxy(t *testing.T) {
	_, err := NewClient("sk-test", "://not-a-url")
	assert.Error(t, err)
}
