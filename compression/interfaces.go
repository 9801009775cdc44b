package compression

import "fmt"

type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// ByName returns the named compressor
func ByName(name string) (Compressor, error) {
	switch name {
	case "snappy":
		return NewSnappyCompressor(), nil
	default:
		return nil, fmt.Errorf("unknown compression: %s", name)
	}
}
