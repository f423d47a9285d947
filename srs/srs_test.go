package srs

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/stretchr/testify/require"
)

func TestRawPointFormat(t *testing.T) {
	s, err := kzg.NewSRS(35, big.NewInt(42))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteG1(&buf, s.Pk.G1))
	require.Equal(t, len(s.Pk.G1)*G1_SIZE, buf.Len())

	back, err := ReadG1(bytes.NewReader(buf.Bytes()), -1)
	require.NoError(t, err)
	require.Equal(t, s.Pk.G1, back)

	_, err = ReadG1(bytes.NewReader(buf.Bytes()[:G1_SIZE+1]), 2)
	require.Error(t, err)
	require.Equal(t, Checksum(s.Pk.G1), Checksum(back))
}

func TestCacheGeneratesAndReloads(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, "", 67)
	canonical, lagrange, err := c.Sized(35, 32)
	require.NoError(t, err)
	require.Len(t, canonical.Pk.G1, 35)
	require.Len(t, lagrange.Pk.G1, 32)

	for _, name := range []string{CK_FILE, VK_FILE, "SRS.LK.5.BIN"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		_, err = os.Stat(filepath.Join(dir, name+SUM_SUFFIX))
		require.NoError(t, err, name)
	}

	again := New(dir, "", 0)
	canonical2, lagrange2, err := again.Sized(35, 32)
	require.NoError(t, err)
	require.Equal(t, canonical.Pk.G1, canonical2.Pk.G1)
	require.Equal(t, lagrange.Pk.G1, lagrange2.Pk.G1)
	require.True(t, canonical.Vk.G2[1].Equal(&canonical2.Vk.G2[1]))

	points, err := again.Canonical()
	require.NoError(t, err)
	require.Len(t, points, 67)

	_, _, err = again.Sized(131, 128)
	require.ErrorIs(t, err, ErrTooSmall)

	_, _, err = again.Sized(35, 24)
	require.Error(t, err)
}

func TestCacheDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	_, _, err := New(dir, "", 35).Sized(35, 32)
	require.NoError(t, err)

	path := filepath.Join(dir, CK_FILE)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[G1_SIZE+3] ^= 1
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, _, err = New(dir, "", 0).Sized(35, 32)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestLagrangeChecksums(t *testing.T) {
	s, err := kzg.NewSRS(35, big.NewInt(42))
	require.NoError(t, err)
	sums, err := LagrangeChecksums(s.Pk.G1)
	require.NoError(t, err)
	require.Len(t, sums, 5)
	lk, err := kzg.ToLagrangeG1(s.Pk.G1[:8])
	require.NoError(t, err)
	require.Equal(t, Checksum(lk), sums[3])
}
