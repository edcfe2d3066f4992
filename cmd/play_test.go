package cmd

import (
	"testing"
	"time"

	"github.com/jsphweid/chartband/band"
	"github.com/jsphweid/chartband/chart"
	"github.com/jsphweid/chartband/transport"
	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	assert := assert.New(t)
	se := band.NewSession(band.NewScheduler(transport.NewManual(), band.Voices{}, nil), time.Millisecond)
	se.Load(chart.Parse("*A[C^7 |D-7 G7 ]"))

	for _, line := range []string{"t 150", "k -2", "l 0", "v bass -4", "c", ""} {
		quit, err := command(se, line)
		assert.NoError(err, line)
		assert.False(quit, line)
	}
	p := se.Params()
	assert.Equal(150.0, p.Tempo)
	assert.Equal(-2, p.Transpose)
	assert.Equal(0, p.Loops)
	assert.Equal(-4.0, p.Levels[band.Bass])
	assert.True(p.Mute[band.Click])

	quit, err := command(se, "q")
	assert.NoError(err)
	assert.True(quit)

	for _, line := range []string{"t fast", "t -3", "l -1", "v tuba 0", "v bass loud", "x"} {
		_, err := command(se, line)
		assert.Error(err, line)
	}
}
