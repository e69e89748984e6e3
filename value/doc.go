// Package value implements BlueScript's tagged 32-bit value encoding.
//
// A Value is the sole value type compiled BlueScript code ever sees: a
// 32-bit word whose low two bits select one of four tags.
//
//	00  signed integer   (payload << 2, two's complement, 30-bit range)
//	01  float            (custom 30-bit encoding, see FloatToValue)
//	10  reserved         (must never appear)
//	11  pointer          (word-aligned heap address, as a word index)
//
// All conversions are pure bit manipulation except the float encoder and
// decoder, which rescale through a fixed normaliser to trade native
// float32 precision for three header bits. See FloatToValue for the
// algorithm, ported bit-for-bit from the reference C runtime.
package value
