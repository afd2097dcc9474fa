package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "holdings.yaml"))
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "1", doc.Version)
	assert.Equal(t, EntryGroup, doc.Entry)
	assert.Equal(t, "EMPLOYER_IDENTIFICATION_NUMBER", doc.GroupBy)
	assert.Equal(t, []string{"employerIdentificationNumber", "participants"}, doc.Instructions.Names())

	alias, ok := doc.Instructions.Get("employerIdentificationNumber")
	require.True(t, ok)
	assert.Equal(t, Spec{Kind: KindAlias, Field: "EMPLOYER_IDENTIFICATION_NUMBER"}, alias)

	participants, ok := doc.Instructions.Get("participants")
	require.True(t, ok)
	assert.Equal(t, KindGroup, participants.Kind)
	assert.Equal(t, "SOCIAL_SECURITY_NUMBER", participants.By)
	assert.Empty(t, participants.From)
	assert.Equal(t, []string{"socialSecurityNumber", "holdings", "totalShares"}, participants.Instructions.Names())

	ssn, _ := participants.Instructions.Get("socialSecurityNumber")
	assert.Equal(t, Spec{Kind: KindStrategy, Strategy: "digits", Field: "SOCIAL_SECURITY_NUMBER"}, ssn)

	holdings, _ := participants.Instructions.Get("holdings")
	assert.Equal(t, KindArray, holdings.Kind)
	assert.Empty(t, holdings.From)
	assert.Equal(t,
		[]string{"internationalStockIdentificationNumber", "totalShares"},
		holdings.Instructions.Names())

	total, _ := participants.Instructions.Get("totalShares")
	assert.Equal(t, Spec{Kind: KindSum, Field: "HOLDING.SHARE_QUANTITY"}, total)

	_, ok = doc.Instructions.Get("missing")
	assert.False(t, ok)
}

func TestParse_Defaults(t *testing.T) {
	doc, err := Parse([]byte("instructions: {a: A}\n"))
	require.NoError(t, err)

	assert.Equal(t, "1", doc.Version)
	assert.Equal(t, EntryObject, doc.Entry)

	doc, err = Parse(nil)
	require.NoError(t, err)
	assert.True(t, doc.Instructions.IsEmpty())
}

func TestParse_ShortAndLongForms(t *testing.T) {
	doc, err := Parse([]byte(`
instructions:
  short:
    object: {ssn: SSN}
  long:
    object: {from: EMPLOYEE, instructions: {ssn: SSN}}
  rows:
    array: {ssn: SSN}
  fixed: {const: [1, two]}
  name: {join: [FIRST, LAST], sep: ", "}
  anchored: &ssn {path: PERSON.SSN}
  again: *ssn
`))
	require.NoError(t, err)

	short, _ := doc.Instructions.Get("short")
	assert.Equal(t, KindObject, short.Kind)
	assert.Empty(t, short.From)
	assert.Equal(t, []string{"ssn"}, short.Instructions.Names())

	long, _ := doc.Instructions.Get("long")
	assert.Equal(t, "EMPLOYEE", long.From)
	assert.Equal(t, []string{"ssn"}, long.Instructions.Names())

	rows, _ := doc.Instructions.Get("rows")
	assert.Equal(t, KindArray, rows.Kind)
	assert.Equal(t, []string{"ssn"}, rows.Instructions.Names())

	fixed, _ := doc.Instructions.Get("fixed")
	assert.Equal(t, []any{1, "two"}, fixed.Const)

	name, _ := doc.Instructions.Get("name")
	assert.Equal(t, Spec{Kind: KindJoin, Fields: []string{"FIRST", "LAST"}, Sep: ", "}, name)

	anchored, _ := doc.Instructions.Get("anchored")
	again, _ := doc.Instructions.Get("again")
	assert.Equal(t, anchored, again)
}

func TestParse_UnknownKeysAreKept(t *testing.T) {
	doc, err := Parse([]byte(`
instructions:
  a: {summ: AMOUNT}
  b: {array: {from: ROWS, instrutions: {x: X}}}
`))
	require.NoError(t, err)

	a, _ := doc.Instructions.Get("a")
	assert.Equal(t, KindInvalid, a.Kind)
	assert.Equal(t, []string{"summ"}, a.Unknown)

	b, _ := doc.Instructions.Get("b")
	assert.Equal(t, KindArray, b.Kind)
	assert.Equal(t, []string{"instrutions"}, b.Unknown)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"instructions not a mapping", "instructions: [a, b]", "instructions must be a mapping"},
		{"number as instruction", "instructions: {a: 42}", "expected a field name or an operator mapping"},
		{"sequence as instruction", "instructions: {a: [X]}", "expected a field name or an operator mapping"},
		{"two operators", "instructions: {a: {path: X, sum: Y}}", "more than one operator"},
		{"field on path", "instructions: {a: {path: X, field: Y}}", `"field" does not apply to path`},
		{"sep on sum", "instructions: {a: {sum: X, sep: Y}}", `"sep" does not apply to sum`},
		{"count false", "instructions: {a: {count: false}}", "only count: true"},
		{"by on array", "instructions: {a: {array: {from: X, by: Y}}}", `"by" only applies to group`},
		{"object body scalar", "instructions: {a: {object: X}}", "expected a mapping"},
		{"duplicate field", "instructions:\n  a: X\n  a: Y\n", `duplicate destination field "a"`},
		{"nested error names field", "instructions: {outer: {object: {inner: 1}}}", `field "outer"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read instruction file")
}

func TestMarshal_RoundTrip(t *testing.T) {
	for _, name := range []string{"employee.yaml", "holdings.yaml", "summary.yaml"} {
		t.Run(name, func(t *testing.T) {
			doc, err := LoadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteFile(doc, path))

			again, err := LoadFile(path)
			require.NoError(t, err)

			assert.Equal(t, doc, again)
		})
	}
}

func TestMarshal_Order(t *testing.T) {
	doc := &Document{
		Version: "1",
		Entry:   EntryObject,
		Instructions: Instructions{
			{Name: "zeta", Spec: Spec{Kind: KindAlias, Field: "Z"}},
			{Name: "alpha", Spec: Spec{Kind: KindCount}},
			{Name: "mid", Spec: Spec{Kind: KindStrategy, Strategy: "upper", Field: "M"}},
		},
	}

	data, err := Marshal(doc)
	require.NoError(t, err)

	assert.Equal(t, `version: "1"
entry: object
instructions:
    zeta: Z
    alpha:
        count: true
    mid:
        strategy: upper
        field: M
`, string(data))
}

func TestMarshal_InvalidSpec(t *testing.T) {
	_, err := Marshal(&Document{Instructions: Instructions{{Name: "x"}}})
	require.Error(t, err)
}
