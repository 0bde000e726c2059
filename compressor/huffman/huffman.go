// Package huffman computes optimal prefix-free binary codes for the
// distinct bytes of an input and rewrites the input as a bit-string of
// '0'/'1' characters, one character per emitted bit. The bit-string is
// deliberately left unpacked; packing into dense bytes is a separate
// downstream transform.
package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
)

var (
	// ErrEmptyInput is returned when there is nothing to encode. An
	// empty input has no frequency distribution to build a tree from.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrAllocation is returned when the node arena cannot hold
	// another node. The arena is sized exactly for one run, so hitting
	// this outside of deliberate misuse means the run's bookkeeping
	// is broken.
	ErrAllocation = errors.New("huffman: allocation failure")

	// ErrMissingCode is returned when a byte of the input has no entry
	// in the code table. The table is built from the same input, so
	// this is an invariant violation and is reported rather than
	// assumed unreachable.
	ErrMissingCode = errors.New("huffman: no code for symbol")
)

// SessionState tracks where a Session is in its pipeline.
type SessionState uint8

const (
	StateIdle SessionState = iota
	StateCountingFrequencies
	StateBuildingTree
	StateExtractingCodes
	StateEncoding
	StateDone
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCountingFrequencies:
		return "CountingFrequencies"
	case StateBuildingTree:
		return "BuildingTree"
	case StateExtractingCodes:
		return "ExtractingCodes"
	case StateEncoding:
		return "Encoding"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	}
	return fmt.Sprintf("SessionState(%d)", uint8(s))
}

var _ fmt.Stringer = SessionState(0)

// Session owns all memory of one encoding run: the frequency map, the
// node arena and the code table. It is reusable; Encode resets any
// previous run first, and Reset releases everything as one unit. A
// Session is not safe for concurrent use; callers sharing one must
// serialize access themselves.
type Session struct {
	state      SessionState
	inputLen   int
	symbolFreq map[byte]int
	arena      *nodeArena
	root       int32
	codes      map[byte]string
}

func NewSession() *Session {
	newSession := new(Session)
	newSession.state = StateIdle
	newSession.root = noChild
	return newSession
}

// State reports the session's position in the
// Idle -> CountingFrequencies -> BuildingTree -> ExtractingCodes ->
// Encoding -> Done pipeline. Failed is terminal until the next Reset
// or Encode.
func (s *Session) State() SessionState {
	return s.state
}

// Encode runs the full pipeline over input and returns the bit-string.
// The output length is the sum over distinct symbols of occurrence
// count times code length. Encoding an empty input fails with
// ErrEmptyInput before any tree construction.
func (s *Session) Encode(input []byte) ([]byte, error) {
	s.Reset()
	s.state = StateCountingFrequencies
	s.inputLen = len(input)
	s.symbolFreq = countFrequencies(input)
	if len(s.symbolFreq) == 0 {
		s.state = StateFailed
		return nil, ErrEmptyInput
	}

	s.state = StateBuildingTree
	s.arena = newNodeArena(2*len(s.symbolFreq) - 1)
	root, err := buildTree(s.symbolFreq, s.arena)
	if err != nil {
		s.state = StateFailed
		return nil, err
	}
	s.root = root
	s.symbolFreq = nil

	s.state = StateExtractingCodes
	s.codes = extractCodes(s.arena, s.root)

	s.state = StateEncoding
	output, err := encodeWithTable(input, s.codes)
	if err != nil {
		s.state = StateFailed
		return nil, err
	}
	s.state = StateDone
	return output, nil
}

// Decode rebuilds the original bytes from a bit-string produced by this
// session's last Encode, walking the retained tree one bit-character at
// a time. The bit-string carries no length prefix; the symbol count is
// taken from the encoded input's length, which the session remembers.
func (s *Session) Decode(bits []byte) ([]byte, error) {
	if s.state != StateDone {
		return nil, fmt.Errorf("huffman: decode requires a completed encode, session is %s", s.state)
	}
	output := make([]byte, 0, s.inputLen)
	rootNode := s.arena.at(s.root)
	if rootNode.isLeaf() {
		for i, c := range bits {
			if c != '1' {
				return nil, fmt.Errorf("huffman: invalid bit character %q at offset %d", c, i)
			}
			output = append(output, byte(rootNode.symbol))
		}
		return output, nil
	}
	current := s.root
	for i, c := range bits {
		n := s.arena.at(current)
		switch c {
		case '0':
			current = n.left
		case '1':
			current = n.right
		default:
			return nil, fmt.Errorf("huffman: invalid bit character %q at offset %d", c, i)
		}
		if child := s.arena.at(current); child.isLeaf() {
			output = append(output, byte(child.symbol))
			current = s.root
		}
	}
	if current != s.root {
		return nil, fmt.Errorf("huffman: bit-string ends mid-code")
	}
	return output, nil
}

// Reset discards the frequency map, node arena and code table as one
// unit and returns the session to Idle for reuse on new input.
func (s *Session) Reset() {
	s.symbolFreq = nil
	s.arena = nil
	s.root = noChild
	s.codes = nil
	s.inputLen = 0
	s.state = StateIdle
}

// CodeTable returns a copy of the symbol-to-code mapping of the last
// completed encode, or nil if there is none.
func (s *Session) CodeTable() map[byte]string {
	if s.codes == nil {
		return nil
	}
	table := make(map[byte]string, len(s.codes))
	for symbol, code := range s.codes {
		table[symbol] = code
	}
	return table
}

// Dump writes a programmer-readable listing of the session's state and
// code table to the given writer.
func (s *Session) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Session{\n")
	fmt.Fprintf(&buf, "\tState() = %s\n", s.state)
	var keys []byte
	for symbol := range s.codes {
		keys = append(keys, symbol)
	}
	slices.Sort(keys)
	for _, symbol := range keys {
		fmt.Fprintf(&buf, "\tCode(0x%02x) = %q\n", symbol, s.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func countFrequencies(input []byte) map[byte]int {
	symbolFreq := make(map[byte]int)
	for _, b := range input {
		symbolFreq[b]++
	}
	return symbolFreq
}

func encodeWithTable(input []byte, symbolEnc map[byte]string) ([]byte, error) {
	var output []byte
	for i, b := range input {
		code, ok := symbolEnc[b]
		if !ok {
			return nil, fmt.Errorf("%w: byte 0x%02x at offset %d", ErrMissingCode, b, i)
		}
		output = append(output, code...)
	}
	return output, nil
}

// EncodingWriter adapts a Session to io.WriteCloser: each Write encodes
// its argument as one run and forwards the bit-string to the underlying
// writer.
type EncodingWriter struct {
	w       io.Writer
	session *Session
}

func (ew *EncodingWriter) Write(data []byte) (int, error) {
	encoded, err := ew.session.Encode(data)
	if err != nil {
		return 0, err
	}
	return ew.w.Write(encoded)
}

func (ew *EncodingWriter) Close() error {
	ew.session.Reset()
	return nil
}

func NewWriter(writer io.Writer) io.WriteCloser {
	newEW := new(EncodingWriter)
	newEW.w = writer
	newEW.session = NewSession()
	return newEW
}
