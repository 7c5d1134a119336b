package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{"meltingPointK": Numeric, "cost": Numeric}

func TestParse_HeaderDriven(t *testing.T) {
	text := "cost, id ,name,meltingPointK\n" +
		"1.5,PCM-001, Dummy A ,250\r\n" +
		"abc,PCM-002,Dummy B,\n"

	rows := Parse(text, testSchema)

	require.Len(t, rows, 2)
	assert.Equal(t, "PCM-001", rows[0].Text("id"))
	assert.Equal(t, "Dummy A", rows[0].Text("name"))
	m, ok := rows[0].Measure("meltingPointK").Float()
	assert.True(t, ok)
	assert.Equal(t, 250.0, m)
	c, ok := rows[0].Measure("cost").Float()
	assert.True(t, ok)
	assert.Equal(t, 1.5, c)

	assert.False(t, rows[1].Measure("cost").IsKnown(), "unparseable numeric is missing")
	assert.False(t, rows[1].Measure("meltingPointK").IsKnown(), "empty numeric is missing")
}

func TestParse_ShortRowDefaults(t *testing.T) {
	rows := Parse("id,name,safetyRating,cost\nPCM-001,Only Name", testSchema)

	require.Len(t, rows, 1)
	assert.Equal(t, "Only Name", rows[0].Text("name"))
	assert.Equal(t, "", rows[0].Text("safetyRating"))
	assert.False(t, rows[0].Measure("cost").IsKnown())
	assert.Equal(t, "", rows[0].Text("not-a-column"))
}

func TestParse_NoDataRows(t *testing.T) {
	for name, text := range map[string]string{
		"empty":        "",
		"whitespace":   " \n\n ",
		"header only":  "id,name,cost",
		"header + eol": "id,name,cost\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			rows := Parse(text, testSchema)
			assert.NotNil(t, rows)
			assert.Empty(t, rows)
		})
	}
}

func TestParse_LineEndings(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unix", "id,name,cost\nPCM-001,A,1\nPCM-002,B,2\n"},
		{"windows", "id,name,cost\r\nPCM-001,A,1\r\nPCM-002,B,2\r\n"},
		{"mixed", "id,name,cost\r\nPCM-001,A,1\nPCM-002,B,2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Parse(tt.text, testSchema)
			require.Len(t, rows, 2)
			assert.Equal(t, "B", rows[1].Text("name"))
			c, ok := rows[1].Measure("cost").Float()
			assert.True(t, ok)
			assert.Equal(t, 2.0, c)
		})
	}
}

func TestParse_NumericWithUnit(t *testing.T) {
	rows := Parse("id,meltingPointK\nPCM-001,250 K\nPCM-002,K250", testSchema)

	require.Len(t, rows, 2)
	m, ok := rows[0].Measure("meltingPointK").Float()
	assert.True(t, ok)
	assert.Equal(t, 250.0, m)
	assert.False(t, rows[1].Measure("meltingPointK").IsKnown())
}

func TestParse_PreservesOrder(t *testing.T) {
	rows := Parse("id\nc\na\nb", nil)
	require.Len(t, rows, 3)
	assert.Equal(t, "c", rows[0].Text("id"))
	assert.Equal(t, "a", rows[1].Text("id"))
	assert.Equal(t, "b", rows[2].Text("id"))
}

func TestParsePositional(t *testing.T) {
	text := "pcmId,name,propertyType\n" +
		"PCM-001, Cp ,solid-specific-heat\n" +
		" ,orphan,density\n" +
		"PCM-002,short\n"

	rows := ParsePositional(text)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"PCM-001", "Cp", "solid-specific-heat"}, rows[0])
	assert.Equal(t, "short", Cell(rows[1], 1))
	assert.Equal(t, "", Cell(rows[1], 2))
}

func TestParsePositional_HeaderOnly(t *testing.T) {
	rows := ParsePositional("pcmId,name,propertyType,a,b,c,tmin,tmax")
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
