package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanComment(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    []RawInvocation
	}{
		{
			name:    "single directive",
			comment: "Lists all users.\n!Route GET, '/users'",
			want: []RawInvocation{
				{Name: "Route", ArgText: "GET, '/users'", Line: 1},
			},
		},
		{
			name:    "multiple directives in source order",
			comment: "!Table 'accounts'\nsome prose\n!Controller '/api'",
			want: []RawInvocation{
				{Name: "Table", ArgText: "'accounts'", Line: 0},
				{Name: "Controller", ArgText: "'/api'", Line: 2},
			},
		},
		{
			name:    "no directives yields empty result",
			comment: "just a plain comment\nwith two lines",
			want:    nil,
		},
		{
			name:    "bang without identifier is not a directive",
			comment: "watch out! spaces\n! Route GET, '/x'",
			want:    nil,
		},
		{
			name:    "directive with no arguments",
			comment: "!Index",
			want:    []RawInvocation{{Name: "Index", ArgText: "", Line: 0}},
		},
		{
			name:    "comment terminator ends the argument text",
			comment: "/** !Column integer, nullable: true */",
			want: []RawInvocation{
				{Name: "Column", ArgText: "integer, nullable: true", Line: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanComment(tt.comment)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanCommentOrderIsStable(t *testing.T) {
	comment := "!Route GET, '/a'\n!Route POST, '/b'\n!Route PUT, '/c'"
	got := ScanComment(comment)
	require.Len(t, got, 3)
	assert.Equal(t, "GET, '/a'", got[0].ArgText)
	assert.Equal(t, "POST, '/b'", got[1].ArgText)
	assert.Equal(t, "PUT, '/c'", got[2].ArgText)
}
