package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRuleIndex(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantIndex int
		wantOK    bool
	}{
		{name: "button zero", id: "deleteRuleButton-0", wantIndex: 0, wantOK: true},
		{name: "button large", id: "deleteRuleButton-999", wantIndex: 999, wantOK: true},
		{name: "bare number", id: "7", wantIndex: 7, wantOK: true},
		{name: "digits mid string", id: "rule12row", wantIndex: 12, wantOK: true},
		{name: "first run wins", id: "row3-button7", wantIndex: 3, wantOK: true},
		{name: "no digits", id: "deleteRuleButton-", wantOK: false},
		{name: "empty", id: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRuleIndex(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIndex, got)
			}
		})
	}
}
