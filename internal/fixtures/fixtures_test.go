package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"github.com/stretchr/testify/require"
)

func TestSeed_Valid(t *testing.T) {
	details, err := Seed()
	require.NoError(t, err)
	require.Len(t, details, 8)

	seen := map[string]bool{}
	for i := range details {
		d := &details[i]
		require.NoError(t, casestudy.ValidateDetail(d), d.ID)
		require.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
		_, ok := d.Enacted()
		require.True(t, ok, "%s has unparseable date %q", d.ID, d.EnactedDate)
	}
	require.Equal(t, "EU AI Act", details[0].PolicyName)
	require.Equal(t, 0.72, details[0].Metadata.LegalSimilarity)
}

func TestDecode_AssignsMissingIDs(t *testing.T) {
	src := `
- country: Morocco
  policy_name: Digital Morocco 2030
  policy_type: national_strategy
  data_quality: projected
`
	details, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, details, 1)
	_, err = uuid.Parse(details[0].ID)
	require.NoError(t, err)
}

func TestDecode_MissingIDsAreStableAcrossDecodes(t *testing.T) {
	src := `
- country: Morocco
  policy_name: Digital Morocco 2030
  policy_type: national_strategy
  data_quality: projected
  enacted_date: "2024-09-25"
- country: Morocco
  policy_name: AI Ethics Charter
  policy_type: voluntary
  data_quality: projected
`
	first, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	second, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	require.Equal(t, first[0].ID, second[0].ID)
	require.Equal(t, first[1].ID, second[1].ID)
	require.NotEqual(t, first[0].ID, first[1].ID)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("- id: x\n  colour: red\n"))
	require.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	details, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, details)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studies.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: a\n  country: UK\n"), 0o600))

	details, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a", details[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
