package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/practice/internal/model"
)

func TestStore_ExportCSVRoundTrip(t *testing.T) {
	s, _ := setupTestStore(t)
	mustAdd(t, s, "Piano", "Bach, Prelude in C", 30, "2026-10-01")
	_, err := s.Add("Voice", `"Ave Maria"`, 15, "breath\nsupport", "2026-10-03")
	require.NoError(t, err)
	mustAdd(t, s, "Guitar", "Sor", 20, "2026-10-02")
	crlf, err := s.Add("Piano", "Czerny", 10, "line1\r\nline2", "2026-10-04")
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2", crlf.Notes)

	out := filepath.Join(t.TempDir(), "nested", "export.csv")
	written, err := s.ExportCSV(out)
	require.NoError(t, err)
	assert.Equal(t, out, written)

	f, err := os.Open(written)
	require.NoError(t, err)
	defer f.Close()
	got, err := ReadCSV(f)
	require.NoError(t, err)

	want, err := s.List(model.Filter{})
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("csv round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_ExportCSVDefaultPath(t *testing.T) {
	s, path := setupTestStore(t)
	mustAdd(t, s, "Piano", "Bach", 30, "2026-10-01")

	written, err := s.ExportCSV("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), ExportFileName), written)

	raw, err := os.ReadFile(written)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,date,instrument,piece,duration_minutes,notes", lines[0])
	assert.Equal(t, "id-0001,2026-10-01,Piano,Bach,30,", lines[1])

	custom := New(path, WithExportPath(filepath.Join(t.TempDir(), "mine.csv")))
	assert.Equal(t, "mine.csv", filepath.Base(custom.DefaultExportPath()))
}

func TestReadCSV_LegacyHeader(t *testing.T) {
	in := "date,instrument,piece,duration_minutes,notes\n2026-09-01,Drums,Paradiddles,12,\n"

	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []model.PracticeSession{
		{Date: "2026-09-01", Instrument: "Drums", Piece: "Paradiddles", DurationMinutes: 12},
	}, got)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "missing header"},
		{"missing column", "date,instrument,duration_minutes\n", `missing column "piece"`},
		{"bad minutes", "date,instrument,piece,duration_minutes\n2026-09-01,Drums,Fill,ten\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
