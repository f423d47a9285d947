package srs

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

// G1_SIZE is the size of one point in the raw point format: X then Y, six
// big-endian limbs each, in the field's internal representation.
const G1_SIZE = 96

// ReadG1 parses up to size points in the raw point format. A negative size
// reads until the end of r.
func ReadG1(r io.Reader, size int) (val []bls12381.G1Affine, err error) {
	var g1 bls12381.G1Affine
	buf := make([]byte, G1_SIZE)
	if size >= 0 {
		val = make([]bls12381.G1Affine, 0, size)
	}
	for n := 0; size < 0 || n < size; n++ {
		if _, err = io.ReadFull(r, buf); err != nil {
			if size < 0 && err == io.EOF {
				return val, nil
			}
			return nil, err
		}
		for i := 0; i < 6; i++ {
			g1.X[i] = binary.BigEndian.Uint64(buf[8*i:])
			g1.Y[i] = binary.BigEndian.Uint64(buf[48+8*i:])
		}
		val = append(val, g1)
	}
	return val, nil
}

func WriteG1(w io.Writer, val []bls12381.G1Affine) error {
	buf := make([]byte, G1_SIZE)
	for _, xy := range val {
		for i := 0; i < 6; i++ {
			binary.BigEndian.PutUint64(buf[8*i:], xy.X[i])
			binary.BigEndian.PutUint64(buf[48+8*i:], xy.Y[i])
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Checksum is the hex sha256 of the canonical encoding of val, independent
// of the raw format.
func Checksum(val []bls12381.G1Affine) string {
	h := sha256.New()
	for _, xy := range val {
		x, y := xy.X.Bytes(), xy.Y.Bytes()
		h.Write(x[:])
		h.Write(y[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LagrangeChecksums returns the checksum of the lagrange form of every power
// of two prefix of ck, keyed by the log of its size.
func LagrangeChecksums(ck []bls12381.G1Affine) (map[int]string, error) {
	sums := map[int]string{}
	for i := 1; (1 << i) <= len(ck); i++ {
		lk, err := kzg.ToLagrangeG1(ck[:1<<i])
		if err != nil {
			return nil, err
		}
		sums[i] = Checksum(lk)
	}
	return sums, nil
}

func readPoints(path string) ([]bls12381.G1Affine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size()%G1_SIZE != 0 {
		return nil, fmt.Errorf("%w: %s has %d bytes", ErrCorrupt, path, st.Size())
	}
	return ReadG1(bufio.NewReader(f), int(st.Size()/G1_SIZE))
}

func writePoints(path string, val []bls12381.G1Affine) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := WriteG1(w, val); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readVk(path string) (vk kzg.VerifyingKey, err error) {
	f, err := os.Open(path)
	if err != nil {
		return vk, err
	}
	defer f.Close()
	if _, err = vk.ReadFrom(bufio.NewReader(f)); err != nil {
		return vk, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	vk.Lines[0] = bls12381.PrecomputeLines(vk.G2[0])
	vk.Lines[1] = bls12381.PrecomputeLines(vk.G2[1])
	return vk, nil
}

func writeVk(path string, vk *kzg.VerifyingKey) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := vk.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
