package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAnnotation(t *testing.T) {
	for _, a := range []string{"Mr", "Mrs", "Ms", "Dr", "Dr.HC"} {
		assert.True(t, ValidAnnotation(a), a)
	}
	for _, a := range []string{"", "mr", "Prof", "Miss"} {
		assert.False(t, ValidAnnotation(a), a)
	}
}

func TestRegistrant_HasVideo(t *testing.T) {
	var r Registrant
	assert.False(t, r.HasVideo())

	empty := ""
	r.VideoURL = &empty
	assert.False(t, r.HasVideo())

	url := "https://bucket.s3.us-east-1.amazonaws.com/wpd_videos/x/clip.mp4"
	r.VideoURL = &url
	assert.True(t, r.HasVideo())
}

func TestRegistrant_JSONNeverLeaksPasscode(t *testing.T) {
	r := Registrant{Name: "Jane", Email: "jane@example.com", Passcode: "123456"}

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "123456")

	view, err := json.Marshal(r.ToStatusView())
	require.NoError(t, err)
	assert.NotContains(t, string(view), "123456")
}
