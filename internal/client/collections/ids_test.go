package collections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDGenerator_Next(t *testing.T) {
	now := time.UnixMilli(1000)
	g := idGenerator{now: func() time.Time { return now }}

	assert.EqualValues(t, 1000, g.next(0))
	assert.EqualValues(t, 1001, g.next(0))
	assert.EqualValues(t, 5001, g.next(5000))

	now = time.UnixMilli(9000)
	assert.EqualValues(t, 9000, g.next(5001))
}
