package common_test

import (
	"testing"

	"github.com/roffe/speedometer/pkg/common"
	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	assert.Equal(t, 1.0, common.Scale(300, 300))
	assert.Equal(t, 2.0, common.Scale(600, 900))
	assert.Equal(t, 0.5, common.Scale(400, 150))
}

func TestTickSize(t *testing.T) {
	w, h := common.TickSize(true)
	assert.Equal(t, 5.0, w)
	assert.Equal(t, 20.0, h)
	w, h = common.TickSize(false)
	assert.Equal(t, 3.0, w)
	assert.Equal(t, 10.0, h)
}
