package plog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LevelName(t *testing.T) {
	tests := []struct {
		level Level
		full  string
		short string
	}{
		{LVL_VERBOSE, "VERBOSE", "V"},
		{LVL_DEBUG, "DEBUG", "D"},
		{LVL_INFO, "INFO", "I"},
		{LVL_WARN, "WARN", "W"},
		{LVL_ERROR, "ERROR", "E"},
		{LVL_VERBOSE - 1, "VERBOSE-1", "V-1"},
		{LVL_VERBOSE - 3, "VERBOSE-3", "V-3"},
		{LVL_ERROR + 2, "ERROR+2", "E+2"},
		{0, "VERBOSE-2", "V-2"},
		{-10, "VERBOSE-12", "V-12"},
		{LVL_ALL, "VERBOSE-9223372036854775810", "V-9223372036854775810"},
		{LVL_ALL + 1, "VERBOSE-9223372036854775809", "V-9223372036854775809"},
		{LVL_NONE, "ERROR+9223372036854775801", "E+9223372036854775801"},
		{LVL_NONE - 1, "ERROR+9223372036854775800", "E+9223372036854775800"},
	}
	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			assert.Equal(t, tt.full, LevelName(tt.level))
			assert.Equal(t, tt.short, LevelShortName(tt.level))
			assert.Equal(t, tt.full, tt.level.String())
		})
	}
}

func Test_Level_IsSentinel(t *testing.T) {
	assert.True(t, LVL_ALL.IsSentinel())
	assert.True(t, LVL_NONE.IsSentinel())
	for l := LVL_VERBOSE - 1; l <= LVL_ERROR+1; l++ {
		assert.False(t, l.IsSentinel(), LevelName(l))
	}
	assert.Less(t, LVL_ALL, LVL_VERBOSE)
	assert.Greater(t, LVL_NONE, LVL_ERROR)
}

func Test_ParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"VERBOSE", LVL_VERBOSE, false},
		{"v", LVL_VERBOSE, false},
		{"debug", LVL_DEBUG, false},
		{" Info ", LVL_INFO, false},
		{"W", LVL_WARN, false},
		{"error", LVL_ERROR, false},
		{"all", LVL_ALL, false},
		{"NONE", LVL_NONE, false},
		{"", LVL_NONE, true},
		{"TRACE", LVL_NONE, true},
		{"E+2", LVL_NONE, true},
	}
	for _, tt := range tests {
		t.Run("`"+tt.in+"`", func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorContains(t, err, _ERROR_MESSAGE_UNKNOWN_LEVEL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_panicDesc(t *testing.T) {
	tests := []struct {
		name  string
		panic any
		want  string
	}{
		{"string", "boom", ": `boom`"},
		{"error", errors.New("bad"), ": (error) `bad`"},
		{"int", 0, " " + _ERROR_UNKNOWN_PANIC_TEXT},
		{"nil", nil, " " + _ERROR_UNKNOWN_PANIC_TEXT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, panicDesc(tt.panic))
			assert.Equal(t, tt.want, PanicDesc(tt.panic))
		})
	}
}
