package lz77

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/RockPolish/gbapack"
)

// decompress replays a container the way the BIOS LZ77UnComp routine does.
// If vramSafe is set it also rejects any token a 16-bit write path could
// not handle (encoded displacement 0).
func decompress(t *testing.T, comp []byte, vramSafe bool) []byte {
	t.Helper()
	if len(comp) < 4 {
		t.Fatalf("container shorter than its header")
	}
	if comp[0] != byte(gbapack.LZ77) {
		t.Fatalf("method tag %#02x, want %#02x", comp[0], byte(gbapack.LZ77))
	}
	size := int(comp[1]) | int(comp[2])<<8 | int(comp[3])<<16

	out := make([]byte, 0, size)
	pos := 4
	for len(out) < size {
		if pos >= len(comp) {
			t.Fatalf("ran out of tokens at output byte %d of %d", len(out), size)
		}
		flags := comp[pos]
		pos++
		for bit := 0; bit < 8 && len(out) < size; bit++ {
			if flags&(0x80>>bit) == 0 {
				out = append(out, comp[pos])
				pos++
				continue
			}
			b0, b1 := comp[pos], comp[pos+1]
			pos += 2
			length := int(b0>>4) + 3
			disp := int(b0&0xF)<<8 | int(b1)
			if vramSafe && disp == 0 {
				t.Fatalf("encoded displacement 0 in VRAM-safe stream")
			}
			from := len(out) - disp - 1
			if from < 0 {
				t.Fatalf("match reaches %d bytes before the start", -from)
			}
			for i := 0; i < length; i++ {
				out = append(out, out[from+i])
			}
		}
	}
	if pos != len(comp) {
		t.Fatalf("%d trailing bytes after the token stream", len(comp)-pos)
	}
	if len(out) != size {
		t.Fatalf("token stream produced %d bytes, header says %d", len(out), size)
	}
	return out
}

func testInput(seed int64, n int) []byte {
	rng := rand.New(rand.NewSource(seed))
	data := make([]byte, 0, n)
	phrase := make([]byte, 48)
	rng.Read(phrase)
	for len(data) < n {
		switch rng.Intn(3) {
		case 0:
			data = append(data, bytes.Repeat([]byte{byte(rng.Intn(16))}, rng.Intn(64)+1)...)
		case 1:
			data = append(data, phrase[:rng.Intn(len(phrase))+1]...)
		default:
			for i := rng.Intn(30) + 1; i > 0; i-- {
				data = append(data, byte(rng.Intn(256)))
			}
		}
	}
	return data[:n]
}

func TestCompressRoundTrip(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		for _, n := range []int{1, 7, 8, 9, 100, 5000} {
			data := testInput(seed, n)
			for _, vram := range []bool{false, true} {
				comp, err := Compress(data, vram)
				if err != nil {
					t.Fatal(err)
				}
				if got := decompress(t, comp, vram); !bytes.Equal(got, data) {
					t.Fatalf("seed %d n %d vram %v: round trip mismatch", seed, n, vram)
				}
			}
		}
	}
}

func TestCompressExactOutput(t *testing.T) {
	// "abcabcabc...": one literal group, then matches copying from 3 back.
	data := bytes.Repeat([]byte("abc"), 8)
	comp, err := Compress(data, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x10, 24, 0, 0, // header
		0x18,          // flags: 3 literals, then 2 matches
		'a', 'b', 'c', // literals
		0xF0, 0x02, // copy 18 bytes from distance 3 (disp field 2)
		0x00, 0x02, // copy the final 3 bytes
	}
	if !bytes.Equal(comp, want) {
		t.Errorf("got % x\nwant % x", comp, want)
	}
}

func TestCompressEmpty(t *testing.T) {
	comp, err := Compress(nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x10, 0, 0, 0}; !bytes.Equal(comp, want) {
		t.Errorf("got % x, want % x", comp, want)
	}
}

func TestCompressSizeOverflow(t *testing.T) {
	if _, err := Compress(make([]byte, gbapack.MaxInputSize+1), false); !errors.Is(err, gbapack.ErrSizeOverflow) {
		t.Errorf("got %v, want ErrSizeOverflow", err)
	}
}

// VRAM-safe output can only give up matches, so it must never come out
// smaller than the unconstrained encoding of the same input.
func TestVRAMSafeNeverSmaller(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		data := testInput(seed, 4096)
		plain, err := Compress(data, false)
		if err != nil {
			t.Fatal(err)
		}
		safe, err := Compress(data, true)
		if err != nil {
			t.Fatal(err)
		}
		if len(safe) < len(plain) {
			t.Errorf("seed %d: VRAM-safe output smaller (%d) than plain (%d)", seed, len(safe), len(plain))
		}
	}
}

// A long run is the case where the VRAM constraint bites: the distance-1
// self-copy is forbidden, so the encoder has to fall back to distance 2.
func TestVRAMSafeLongRun(t *testing.T) {
	data := bytes.Repeat([]byte{0x55}, 300)
	comp, err := Compress(data, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := decompress(t, comp, true); !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch")
	}
}

func TestCompressWithLazyParser(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		data := testInput(seed, 4096)
		greedy, err := Compress(data, false)
		if err != nil {
			t.Fatal(err)
		}
		lazy, err := CompressWithMatchFinder(data, &gbapack.HashChain{Parser: &gbapack.LazyParser{}})
		if err != nil {
			t.Fatal(err)
		}
		if got := decompress(t, lazy, false); !bytes.Equal(got, data) {
			t.Fatalf("seed %d: lazy round trip mismatch", seed)
		}
		if len(lazy) > len(greedy)+len(greedy)/8 {
			t.Errorf("seed %d: lazy parse much worse than greedy (%d vs %d)", seed, len(lazy), len(greedy))
		}
	}
}

func TestCompressDeterministic(t *testing.T) {
	data := testInput(3, 2048)
	a, _ := Compress(data, false)
	b, _ := Compress(data, false)
	if !bytes.Equal(a, b) {
		t.Error("same input produced different output")
	}
}
