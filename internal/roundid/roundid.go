// Package roundid names rounds with 26-character ids that sort by creation
// time: a UUIDv7 written in lowercase Crockford base32.
package roundid

import (
	crand "crypto/rand"
	"fmt"
	rand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Crockford's base32, in ascending byte order so ids sort as strings
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id. 26 characters hold 130 bits; the two leading
// bits are always zero.
const Length = 26

// Generator hands out ids. A seeded rng makes the random part reproducible;
// the timestamp always comes from the clock.
type Generator struct {
	mu    sync.Mutex
	clock quartz.Clock
	rng   *rand.Rand
}

// NewGenerator creates a generator. A nil clock uses the wall clock and a
// nil rng uses crypto/rand.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// New returns an id from the wall clock and crypto/rand
func New() string {
	return NewGenerator(nil, nil).Next()
}

// Next returns a fresh id
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var uuid [16]byte
	ms := g.clock.Now("roundid").UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(ms >> (40 - 8*i))
	}

	if g.rng != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.rng.UintN(256))
		}
	} else if _, err := crand.Read(uuid[6:]); err != nil {
		panic("roundid: reading random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // RFC 4122 variant
	return encode(uuid)
}

// bit returns bit i of the 130-bit value made of two zero bits followed by data
func bit(data [16]byte, i int) byte {
	i -= 2
	if i < 0 {
		return 0
	}
	return (data[i/8] >> (7 - i%8)) & 1
}

func encode(data [16]byte) string {
	out := make([]byte, Length)
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v = v<<1 | bit(data, i*5+j)
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

func decode(id string) ([16]byte, error) {
	var data [16]byte
	if err := Validate(id); err != nil {
		return data, err
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, id[i])
		for j := 0; j < 5; j++ {
			pos := i*5 + j - 2
			if pos < 0 || (v>>(4-j))&1 == 0 {
				continue
			}
			data[pos/8] |= 1 << (7 - pos%8)
		}
	}
	return data, nil
}

// Timestamp returns the millisecond creation time encoded in id
func Timestamp(id string) (time.Time, error) {
	data, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	var ms int64
	for i := 0; i < 6; i++ {
		ms = ms<<8 | int64(data[i])
	}
	return time.UnixMilli(ms), nil
}

// Validate checks that id is 26 lowercase base32 characters with a
// leading character no greater than '7'
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
