package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitweaver/Entropy-Engine/compressor/huffman"
)

func TestEncodeHuffman(t *testing.T) {
	e := encoder{encodingEngine: "huffman"}
	n, err := e.write([]byte("abcaabbaaaccaaaa"))
	require.NoError(t, err)
	require.Equal(t, 22, n)
	require.Equal(t, "1000111000011101011111", string(e.encodedContent))
}

func TestEncodeUnknownAlgorithm(t *testing.T) {
	e := encoder{encodingEngine: "bogus"}
	_, err := e.write([]byte("abc"))
	require.Error(t, err)
}

func TestEncodeEmptyContent(t *testing.T) {
	e := encoder{encodingEngine: "huffman"}
	_, err := e.write(nil)
	require.ErrorIs(t, err, huffman.ErrEmptyInput)
}

func TestEncodeFiles(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("abcaabbaaaccaaaa"), 0644))

	require.NoError(t, EncodeFiles([]string{"huffman"}, []string{inputPath}, ".rsn"))

	encoded, err := os.ReadFile(inputPath + ".rsn")
	require.NoError(t, err)
	require.Equal(t, "1000111000011101011111", string(encoded))
}

func TestEncodeFilesMissingFile(t *testing.T) {
	dir := t.TempDir()
	err := EncodeFiles([]string{"huffman"}, []string{filepath.Join(dir, "nope.txt")}, ".rsn")
	require.Error(t, err)
}
