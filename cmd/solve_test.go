package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gosoliton/model_problems/Soliton2D"
)

func TestRunSoliton(t *testing.T) {
	var (
		dir    = t.TempDir()
		icFile = filepath.Join(dir, "input.yaml")
		ms     = &ModelSoliton{
			ICFile:      icFile,
			OutputFile:  filepath.Join(dir, "fields.csv"),
			SummaryFile: filepath.Join(dir, "summary.yaml"),
			Plot:        true,
		}
	)
	fileInput := []byte(`
Title: Test Case
Nz: 15
Nx: 30
MaxIterations: 15
Backend: parallel
`)
	require.NoError(t, os.WriteFile(icFile, fileInput, 0644))
	ip, err := processInput(ms)
	require.NoError(t, err)
	assert.Equal(t, 15, ip.Nz)
	assert.Equal(t, 5., ip.Mu)

	var out bytes.Buffer
	r, err := RunSoliton(&out, ms, ip)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Iteration[1]: |sol| = ")
	assert.Contains(t, out.String(), "psi(x) at z = ")
	assert.Contains(t, out.String(), r.State.String()+" after")

	fh, err := os.Open(ms.OutputFile)
	require.NoError(t, err)
	defer fh.Close()
	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 15*30+1)
	assert.Equal(t, []string{"i", "j", "z", "x", "psi", "phi"}, rows[0])
	for p, row := range rows[1:] {
		psi, err := strconv.ParseFloat(row[4], 64)
		require.NoError(t, err)
		assert.Equal(t, r.Psi[p], psi)
	}

	data, err := os.ReadFile(ms.SummaryFile)
	require.NoError(t, err)
	var sum struct {
		State      string
		Iterations int
		History    []Soliton2D.IterationRecord
	}
	require.NoError(t, yaml.Unmarshal(data, &sum))
	assert.Equal(t, r.State.String(), sum.State)
	assert.Equal(t, r.Iterations, sum.Iterations)
	require.Len(t, sum.History, len(r.History))
	for k, rec := range sum.History {
		want := r.History[k]
		assert.Equal(t, want.Iteration, rec.Iteration)
		assert.InDelta(t, want.UpdateNorm, rec.UpdateNorm, 1.e-6*want.UpdateNorm)
		assert.InDelta(t, want.ResidualNorm, rec.ResidualNorm, 1.e-6*want.ResidualNorm)
	}
}

func TestProcessInputErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := processInput(&ModelSoliton{ICFile: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("Nz: 1\nBackend: gpu\n"), 0644))
	_, err = processInput(&ModelSoliton{ICFile: bad})
	assert.ErrorIs(t, err, Soliton2D.ErrConfiguration)
}

func TestMeasure(t *testing.T) {
	var (
		out   bytes.Buffer
		calls int
	)
	require.NoError(t, measure(&out, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.NotEmpty(t, out.String())
}
