// Package srs loads the KZG structured reference string used for PLONK key
// synthesis, caching the canonical and lagrange forms on disk.
package srs

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/logger"
	"github.com/schollz/progressbar/v3"
)

const (
	CK_FILE    = "SRS.CK.BIN"
	VK_FILE    = "SRS.VK.BIN"
	LK_FILE    = "SRS.LK.%d.BIN"
	SUM_SUFFIX = ".SHA256"
)

// DEFAULT_SIZE is the canonical size generated when no SRS is cached and no
// download URL is configured.
const DEFAULT_SIZE = (1 << 16) + 3

var (
	ErrCorrupt  = errors.New("corrupt srs cache")
	ErrTooSmall = errors.New("srs too small for circuit")
)

// Cache serves SRS from Dir. Missing files are downloaded from URL, or
// generated from a random secret when URL is empty. A generated SRS is fine
// for tests and local runs but not for production.
type Cache struct {
	Dir  string
	URL  string
	Size uint64

	mu       sync.Mutex
	srs      *kzg.SRS
	lagrange map[int][]bls12381.G1Affine
}

func New(dir, url string, size uint64) *Cache {
	return &Cache{Dir: dir, URL: url, Size: size}
}

// Load returns the canonical and lagrange SRS plonk.Setup needs for ccs.
func (c *Cache) Load(ccs constraint.ConstraintSystem) (canonical, lagrange *kzg.SRS, err error) {
	sizeCanonical, sizeLagrange := plonk.SRSSize(ccs)
	return c.Sized(sizeCanonical, sizeLagrange)
}

// Sized is Load for explicit sizes. sizeLagrange must be a power of two no
// larger than sizeCanonical.
func (c *Cache) Sized(sizeCanonical, sizeLagrange int) (canonical, lagrange *kzg.SRS, err error) {
	if bits.OnesCount(uint(sizeLagrange)) != 1 || sizeLagrange > sizeCanonical {
		return nil, nil, fmt.Errorf("invalid lagrange size %d for canonical size %d", sizeLagrange, sizeCanonical)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	full, err := c.canonical(uint64(sizeCanonical))
	if err != nil {
		return nil, nil, err
	}
	if len(full.Pk.G1) < sizeCanonical {
		return nil, nil, fmt.Errorf("%w: have %d points, need %d", ErrTooSmall, len(full.Pk.G1), sizeCanonical)
	}
	lk, err := c.lagrangeOf(full, sizeLagrange)
	if err != nil {
		return nil, nil, err
	}
	canonical = &kzg.SRS{Pk: kzg.ProvingKey{G1: full.Pk.G1[:sizeCanonical]}, Vk: full.Vk}
	lagrange = &kzg.SRS{Pk: kzg.ProvingKey{G1: lk}, Vk: full.Vk}
	return canonical, lagrange, nil
}

// Vk returns the verifier part of the SRS.
func (c *Cache) Vk() (kzg.VerifyingKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	full, err := c.canonical(0)
	if err != nil {
		return kzg.VerifyingKey{}, err
	}
	return full.Vk, nil
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.Dir, name)
}

func (c *Cache) canonical(need uint64) (*kzg.SRS, error) {
	if c.srs != nil {
		return c.srs, nil
	}
	log := logger.Logger().With().Str("dir", c.Dir).Logger()
	pathck, pathvk := c.path(CK_FILE), c.path(VK_FILE)
	if _, err := os.Stat(pathck); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(c.Dir, 0o755); err != nil {
			return nil, err
		}
		if c.URL != "" {
			log.Info().Str("url", c.URL).Msg("local srs cache not found; downloading")
			if err := c.download(CK_FILE); err != nil {
				return nil, err
			}
			if err := c.download(VK_FILE); err != nil {
				return nil, err
			}
		} else {
			size := c.Size
			if size == 0 {
				size = DEFAULT_SIZE
			}
			size = max(size, need)
			log.Warn().Uint64("size", size).Msg("local srs cache not found; generating an insecure srs")
			if err := c.generate(size); err != nil {
				return nil, err
			}
		}
	}
	if err := verifySum(pathck); err != nil {
		return nil, err
	}
	if err := verifySum(pathvk); err != nil {
		return nil, err
	}
	ck, err := readPoints(pathck)
	if err != nil {
		return nil, err
	}
	vk, err := readVk(pathvk)
	if err != nil {
		return nil, err
	}
	if len(ck) < 2 || !ck[0].Equal(&vk.G1) {
		return nil, fmt.Errorf("%w: canonical points do not match the verifying key", ErrCorrupt)
	}
	log.Debug().Int("size", len(ck)).Msg("srs loaded")
	c.srs = &kzg.SRS{Pk: kzg.ProvingKey{G1: ck}, Vk: vk}
	return c.srs, nil
}

func (c *Cache) lagrangeOf(full *kzg.SRS, size int) ([]bls12381.G1Affine, error) {
	if lk, ok := c.lagrange[size]; ok {
		return lk, nil
	}
	if c.lagrange == nil {
		c.lagrange = map[int][]bls12381.G1Affine{}
	}
	pathlk := c.path(fmt.Sprintf(LK_FILE, bits.TrailingZeros(uint(size))))
	lk, err := readPoints(pathlk)
	if err == nil {
		err = verifySum(pathlk)
	}
	if err != nil || len(lk) != size {
		log := logger.Logger()
		log.Info().Int("size", size).Msg("local srs lagrange cache not found; generating")
		if lk, err = kzg.ToLagrangeG1(full.Pk.G1[:size]); err != nil {
			return nil, err
		}
		if err := writePoints(pathlk, lk); err != nil {
			return nil, err
		}
		if err := writeSum(pathlk); err != nil {
			return nil, err
		}
	}
	c.lagrange[size] = lk
	return lk, nil
}

func (c *Cache) generate(size uint64) error {
	tau, err := rand.Int(rand.Reader, fr.Modulus())
	if err != nil {
		return err
	}
	s, err := kzg.NewSRS(ecc.NextPowerOfTwo(max(size, 4)-3)+3, tau)
	if err != nil {
		return err
	}
	pathck, pathvk := c.path(CK_FILE), c.path(VK_FILE)
	if err := writePoints(pathck, s.Pk.G1); err != nil {
		return err
	}
	if err := writeVk(pathvk, &s.Vk); err != nil {
		return err
	}
	if err := writeSum(pathck); err != nil {
		return err
	}
	return writeSum(pathvk)
}

func (c *Cache) download(name string) error {
	url := strings.TrimSuffix(c.URL, "/") + "/" + name
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %s", url, resp.Status)
	}
	var buf bytes.Buffer
	bar := progressbar.DefaultBytes(resp.ContentLength, "Downloading "+name)
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.Body); err != nil {
		return err
	}
	pathto := c.path(name)
	if err := os.WriteFile(pathto, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return writeSum(pathto)
}

func fileSum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func writeSum(path string) error {
	sum, err := fileSum(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path+SUM_SUFFIX, []byte(sum+"\n"), 0o644)
}

func verifySum(path string) error {
	want, err := os.ReadFile(path + SUM_SUFFIX)
	if err != nil {
		return fmt.Errorf("%w: %s: missing checksum", ErrCorrupt, path)
	}
	got, err := fileSum(path)
	if err != nil {
		return err
	}
	if got != strings.TrimSpace(string(want)) {
		return fmt.Errorf("%w: %s: checksum mismatch", ErrCorrupt, path)
	}
	return nil
}

// Canonical reads the cached canonical points without loading the verifying
// key. It is used by tooling.
func (c *Cache) Canonical() ([]bls12381.G1Affine, error) {
	if err := verifySum(c.path(CK_FILE)); err != nil {
		return nil, err
	}
	return readPoints(c.path(CK_FILE))
}
