// Package codec implements the DAN3 wire format: Encode drives
// internal/parser's optimal parse and emits the bitstream (spec.md §4.4's
// "Emission" step, §6); Decode is the matching bitstream interpreter
// (spec.md §4.5).
package codec

import (
	"errors"

	"github.com/musclesoft/dan3/internal/bitio"
	"github.com/musclesoft/dan3/internal/golomb"
	"github.com/musclesoft/dan3/internal/parser"
)

// MaxInputSize is MAX from spec.md §3: 2^20 bytes.
const MaxInputSize = 1 << 20

// Options configures Encode; it is never part of the wire format itself
// (spec.md §6). It is parser.Options verbatim: the parse is the only
// place these three knobs matter.
type Options = parser.Options

// Encode compresses src under opts, returning the self-delimited DAN3
// bitstream.
func Encode(src []byte, opts Options) ([]byte, error) {
	n := len(src)
	if n > MaxInputSize {
		return nil, newError(InputTooLarge, "")
	}
	if n == 0 {
		return []byte{}, nil
	}

	result, err := parser.Parse(src, opts)
	if err != nil {
		if errors.Is(err, parser.ErrUnreachable) {
			return nil, newError(Unreachable, "")
		}
		return nil, err
	}

	w := bitio.NewWriter()
	for i := 0; i < result.Regime; i++ {
		w.WriteBit(1)
	}
	w.WriteBit(0)
	if err := w.WriteByte(src[0]); err != nil {
		return nil, newError(OutputOverflow, err.Error())
	}

	for _, tok := range result.Tokens {
		if tok.Pos == 0 {
			continue // the first byte was already emitted raw, above
		}
		emitToken(w, src, tok, result.Regime)
	}
	emitEnd(w)

	return w.Bytes(), nil
}

func emitToken(w *bitio.Writer, src []byte, tok parser.Token, regime int) {
	if tok.Offset == 0 {
		start := tok.Pos - tok.Length + 1
		if tok.Length == 1 {
			emitLiteral(w, src[start])
			return
		}
		emitLiteralRun(w, tok.Length, src[start:tok.Pos+1])
		return
	}
	w.WriteBit(0)
	golomb.WriteGamma(w, tok.Length)
	golomb.WriteOffset(w, tok.Offset, tok.Length, regime)
}

func emitLiteral(w *bitio.Writer, b byte) {
	w.WriteBit(1)
	_ = w.WriteByte(b)
}

func emitLiteralRun(w *bitio.Writer, length int, raw []byte) {
	w.WriteBit(0)
	for i := 0; i < golomb.BitGolombMax; i++ {
		w.WriteBit(0)
	}
	w.WriteBit(1)
	_ = w.WriteByte(byte(length - golomb.RawMin))
	for _, b := range raw {
		_ = w.WriteByte(b)
	}
}

func emitEnd(w *bitio.Writer) {
	w.WriteBit(0)
	for i := 0; i < golomb.BitGolombMax; i++ {
		w.WriteBit(0)
	}
	w.WriteBit(0)
}

// Decode reverses Encode, returning the original byte sequence.
func Decode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}

	r := bitio.NewReader(src)

	regime := 0
	for {
		b, err := r.ReadBit()
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if b == 0 {
			break
		}
		regime++
		if regime >= golomb.BitOffsetNbr {
			return nil, newError(InvalidStream, "regime selector never terminated")
		}
	}

	first, err := r.ReadByte()
	if err != nil {
		return nil, wrapReadErr(err)
	}
	out := []byte{first}

	for {
		flag, err := r.ReadBit()
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if flag == 1 {
			b, err := r.ReadByte()
			if err != nil {
				return nil, wrapReadErr(err)
			}
			out = append(out, b)
			continue
		}

		length, err := golomb.ReadGamma(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}

		if length == -1 {
			// Sentinel: disambiguate end-of-stream from a literal run.
			next, err := r.ReadBit()
			if err != nil {
				return nil, wrapReadErr(err)
			}
			if next == 0 {
				return out, nil
			}
			b, err := r.ReadByte()
			if err != nil {
				return nil, wrapReadErr(err)
			}
			runLen := int(b) + golomb.RawMin
			for i := 0; i < runLen; i++ {
				raw, err := r.ReadByte()
				if err != nil {
					return nil, wrapReadErr(err)
				}
				out = append(out, raw)
			}
			continue
		}

		offset, err := golomb.ReadOffset(r, length, regime)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		srcStart := len(out) - offset
		if srcStart < 0 {
			return nil, newError(InvalidStream, "back-reference underflows output")
		}
		for i := 0; i < length; i++ {
			out = append(out, out[srcStart+i])
		}
	}
}

func wrapReadErr(err error) error {
	if bitio.IsEOF(err) {
		return newError(TruncatedStream, "")
	}
	return err
}
