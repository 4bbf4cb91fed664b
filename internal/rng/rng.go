package rng

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// ErrUnavailable is returned when the entropy source cannot produce bytes.
// Callers must abort the wager, there is no fallback source.
var ErrUnavailable = errors.New("rng: entropy source unavailable")

// Source is the single source of randomness for every game.
type Source interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() (float64, error)
	// IntN returns a uniformly distributed value in [0, n).
	IntN(n int) (int, error)
}

// 53 bits fill the float64 mantissa exactly
const floatBits = 53

func floatFromBytes(b [8]byte) float64 {
	u := binary.BigEndian.Uint64(b[:]) >> (64 - floatBits)
	return float64(u) / (1 << floatBits)
}

func intFromFloat(f float64, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("rng: IntN called with n=%d", n)
	}
	i := int(f * float64(n))
	if i >= n {
		i = n - 1
	}
	return i, nil
}

// cryptoSource reads from an entropy reader, crypto/rand by default
type cryptoSource struct {
	r io.Reader
}

// NewCrypto returns the production source backed by crypto/rand.
func NewCrypto() Source {
	return &cryptoSource{r: cryptoRand.Reader}
}

// NewCryptoFrom wraps an arbitrary entropy reader.
func NewCryptoFrom(r io.Reader) Source {
	return &cryptoSource{r: r}
}

func (s *cryptoSource) Float64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return floatFromBytes(buf), nil
}

func (s *cryptoSource) IntN(n int) (int, error) {
	f, err := s.Float64()
	if err != nil {
		return 0, err
	}
	return intFromFloat(f, n)
}

// Seeded is a deterministic byte stream: keyed BLAKE2b-256 over
// "clientSeed:nonce:round" with the server seed as key. The same seeds and
// nonce always replay the same draws.
type Seeded struct {
	serverSeed string
	clientSeed string
	nonce      uint64

	round  uint64
	pos    int
	buffer [blake2b.Size256]byte
}

// NewSeeded creates a replayable source.
func NewSeeded(serverSeed, clientSeed string, nonce uint64) *Seeded {
	s := &Seeded{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
	}
	s.fill()
	return s
}

func (s *Seeded) fill() {
	key := []byte(s.serverSeed)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	// only fails for keys longer than 64 bytes, handled above
	h, _ := blake2b.New256(key)
	h.Write([]byte(s.clientSeed + ":" + strconv.FormatUint(s.nonce, 10) + ":" + strconv.FormatUint(s.round, 10)))
	copy(s.buffer[:], h.Sum(nil))
	s.pos = 0
}

func (s *Seeded) next() byte {
	if s.pos >= len(s.buffer) {
		s.round++
		s.fill()
	}
	b := s.buffer[s.pos]
	s.pos++
	return b
}

func (s *Seeded) Float64() (float64, error) {
	var buf [8]byte
	for i := range buf {
		buf[i] = s.next()
	}
	return floatFromBytes(buf), nil
}

func (s *Seeded) IntN(n int) (int, error) {
	f, _ := s.Float64()
	return intFromFloat(f, n)
}
