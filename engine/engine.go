package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"

	"github.com/bitweaver/Entropy-Engine/compressor/huffman"
)

var Engines = [...]string{
	"huffman",
}

type encoder struct {
	encodingEngine string
	encodedContent []byte
}

var writers = map[string]interface{}{
	"huffman": huffman.NewWriter,
}

func (e *encoder) write(content []byte) (int, error) {
	newWriter, ok := writers[e.encodingEngine]
	if !ok {
		return 0, fmt.Errorf("engine: unknown algorithm %q", e.encodingEngine)
	}
	var b bytes.Buffer
	var w io.WriteCloser
	w = newWriter.(func(io.Writer) io.WriteCloser)(&b)
	defer w.Close()
	if _, err := w.Write(content); err != nil {
		return 0, err
	}
	e.encodedContent = b.Bytes()
	return len(e.encodedContent), nil
}

// EncodeFiles runs each file through the named algorithms in order and
// writes the result next to the original with the given extension.
func EncodeFiles(algorithms []string, files []string, fileExtension string) error {
	for _, file := range files {
		if _, err := encodeFile(algorithms, file, file+fileExtension); err != nil {
			return fmt.Errorf("engine: encoding %s: %w", file, err)
		}
	}
	return nil
}

func encodeFile(algorithms []string, filePath string, outputFileName string) ([]byte, error) {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	color.Cyan("Encoding %s...", filePath)
	encoded, err := encode(fileContent, algorithms)
	if err != nil {
		return nil, err
	}
	outputFile, err := os.Create(outputFileName)
	if err != nil {
		return nil, err
	}
	defer outputFile.Close()
	bar := pb.New(len(encoded))
	bar.Set(pb.Bytes, true)
	bar.Start()
	if _, err = bar.NewProxyWriter(outputFile).Write(encoded); err != nil {
		return nil, err
	}
	bar.Finish()
	color.Green("Original size (in bytes): %v", len(fileContent))
	color.Green("Encoded size (in bit characters): %v", len(encoded))
	color.Yellow("Bit characters per input byte: %.2f", float32(len(encoded))/float32(len(fileContent)))
	return encoded, nil
}

func encode(content []byte, algorithms []string) ([]byte, error) {
	for _, algorithm := range algorithms {
		file := encoder{
			encodingEngine: algorithm,
		}
		if _, err := file.write(content); err != nil {
			return nil, err
		}
		content = file.encodedContent
	}
	return content, nil
}
