package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_ValuesFollowColumnOrder(t *testing.T) {
	r := Record{Brand: "Hikvision", Model: "DS-7204", User: "admin", Pass: "12345", Info: "Hold reset 10s"}

	assert.Equal(t, []string{"Hikvision", "DS-7204", "admin", "12345", "Hold reset 10s"}, r.Values())
	assert.Len(t, Columns, len(r.Values()))
}

func TestRecord_MatchesIsCaseSensitive(t *testing.T) {
	r := Record{Brand: "Dahua", Model: "XVR5104"}

	assert.True(t, r.Matches("Dahua", "XVR5104"))
	assert.False(t, r.Matches("dahua", "XVR5104"))
	assert.False(t, r.Matches("Dahua", "xvr5104"))
	assert.False(t, r.Matches("Dahua", ""))
}
