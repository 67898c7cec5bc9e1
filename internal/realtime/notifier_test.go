package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, "collab-updates/alice@example.com", Topic("alice@example.com"))
}
