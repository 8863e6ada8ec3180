package utils_test

import (
	"testing"
	"time"

	"github.com/coopsoc/backoffice_app/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "ten digits get grouped", raw: "9876543210", want: "98765 43210"},
		{name: "punctuation is stripped", raw: "+91 98765-43210", want: "919876543210"},
		{name: "already grouped stays stable", raw: "98765 43210", want: "98765 43210"},
		{name: "short number stays digits only", raw: "12345", want: "12345"},
		{name: "empty input", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.NormalizePhone(tt.raw))
		})
	}
}

func TestParseFlexibleDate(t *testing.T) {
	want := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"2025-03-14", "14/03/2025", "14-03-2025"} {
		got, err := utils.ParseFlexibleDate(raw)
		assert.NoError(t, err, raw)
		assert.True(t, got.Equal(want), raw)
	}

	_, err := utils.ParseFlexibleDate("March 14th")
	assert.Error(t, err)
	_, err = utils.ParseFlexibleDate("")
	assert.Error(t, err)
}
