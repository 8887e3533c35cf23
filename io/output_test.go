package io

import (
	"bytes"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softmatterlab/cppm/analysis"
	"github.com/softmatterlab/cppm/energy"
	"github.com/softmatterlab/cppm/mc"
	"github.com/softmatterlab/cppm/particle"
)

func TestAtomName(t *testing.T) {
	assert.Equal(t, "PP", AtomName(+1))
	assert.Equal(t, "MP", AtomName(-1))
	assert.Equal(t, "NP", AtomName(0))
}

// sampledEnsemble runs the full pipeline on a small system with a fixed
// seed: 10 particles (3 plus, 3 minus, 4 neutral) on a 20 A sphere at a
// Bjerrum length of 7 A for 1000 steps.
func sampledEnsemble(t *testing.T, seed int64) (*particle.Ensemble, analysis.Summary) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	ens, err := particle.New(rng, 20, 10, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	ham := &energy.Hamiltonian{
		Nonbonded: &energy.Nonbonded{Pair: energy.Coulomb{BjerrumLength: 7}},
	}
	sys, err := mc.NewSystem(ens, ham)
	if err != nil {
		t.Fatal(err)
	}
	prop := &mc.Propagator{}
	disp := &mc.Displace{MaxAngle: 0.1}
	prop.Push(disp)
	if err := prop.Run(sys, rng, 1000, nil); err != nil {
		t.Fatal(err)
	}
	sum := analysis.Summary{
		AcceptanceRatio: disp.Stats().AcceptanceRatio(),
		Dipole:          analysis.GlobalProperties(ens).Dipole,
		Energy:          sys.Energy(),
	}
	return ens, sum
}

func TestWriteXYZ(t *testing.T) {
	ens, sum := sampledEnsemble(t, 7)
	var buf bytes.Buffer
	assert.NoError(t, WriteXYZ(&buf, ens, sum))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, expected 12 (2 header + 10 particles)", len(lines))
	}
	assert.Equal(t, "10", lines[0])
	assert.Contains(t, lines[1], "acceptance ratio")

	charges := map[string]float64{"PP": +1, "MP": -1, "NP": 0}
	var netCharge float64
	for i, line := range lines[2:] {
		fields := strings.Fields(line)
		if len(fields) != 4 {
			t.Fatalf("line %d: got %d fields, expected 4: %q", i+3, len(fields), line)
		}
		q, ok := charges[fields[0]]
		if !ok {
			t.Fatalf("line %d: unknown atom name %q", i+3, fields[0])
		}
		netCharge += q

		var r2 float64
		for _, field := range fields[1:] {
			x, err := strconv.ParseFloat(field, 64)
			if err != nil {
				t.Fatalf("line %d: bad coordinate %q", i+3, field)
			}
			r2 += x * x
		}
		if r := math.Sqrt(r2); math.Abs(r-20) > 1e-6 {
			t.Errorf("line %d: |pos| = %.9g, expected 20 within 1e-6", i+3, r)
		}
	}
	assert.Equal(t, 0.0, netCharge, "3 cations and 3 anions must cancel")
}

func TestWritePQR(t *testing.T) {
	ens, sum := sampledEnsemble(t, 7)
	var buf bytes.Buffer
	assert.NoError(t, WritePQR(&buf, ens, sum))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d lines, expected 11 (REMARK + 10 particles)", len(lines))
	}
	assert.True(t, strings.HasPrefix(lines[0], "REMARK"))
	for i, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "ATOM"), "record %d: %q", i+1, line)
		// Charge and radius are the two last columns.
		fields := strings.Fields(line)
		radius := fields[len(fields)-1]
		assert.Equal(t, "2.00", radius, "record %d", i+1)
	}
}

// Two runs with identical seeds and parameters must serialize to identical
// bytes.
func TestWriteDeterministic(t *testing.T) {
	ensA, sumA := sampledEnsemble(t, 7)
	ensB, sumB := sampledEnsemble(t, 7)

	var bufA, bufB bytes.Buffer
	assert.NoError(t, WriteXYZ(&bufA, ensA, sumA))
	assert.NoError(t, WriteXYZ(&bufB, ensB, sumB))
	assert.True(t, bytes.Equal(bufA.Bytes(), bufB.Bytes()))
}

func TestSaveCoordinates(t *testing.T) {
	ens, sum := sampledEnsemble(t, 8)
	dir := t.TempDir()

	fname := filepath.Join(dir, "out.xyz")
	assert.NoError(t, SaveCoordinates(fname, ens, sum))
	data, err := os.ReadFile(fname)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "10\n"))

	assert.NoError(t, SaveCoordinates(filepath.Join(dir, "out.pqr"), ens, sum))
	assert.Error(t, SaveCoordinates(filepath.Join(dir, "out.txt"), ens, sum),
		"unknown suffix must be rejected")
}
