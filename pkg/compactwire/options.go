package compactwire

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
)

// Options configures an Encoder or Decoder.
type Options struct {
	Compression Compression `yaml:"compression"`
	// Level is a zstd level, 1 (fastest) to 22.
	Level int `yaml:"level"`
	// ChunkSize splits the payload into an offset table of chunks of this
	// many bytes. Zero writes no table.
	ChunkSize int `yaml:"chunk_size"`
	// MaxDecodedSize bounds the memory a compressed payload may expand to.
	MaxDecodedSize uint64 `yaml:"max_decoded_size"`

	Logger logrus.FieldLogger `yaml:"-"`
}

func DefaultOptions() Options {
	return Options{
		Compression:    CompressionNone,
		Level:          3,
		MaxDecodedSize: 64 << 20,
		Logger:         logrus.StandardLogger(),
	}
}

// LoadOptions reads YAML over DefaultOptions. Keys left out keep their
// defaults.
func LoadOptions(data []byte) (Options, error) {
	o := DefaultOptions()
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, errors.Wrap(err, "compactwire: parse options")
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o *Options) validate() error {
	switch o.Compression {
	case CompressionNone, CompressionZstd:
	case "":
		o.Compression = CompressionNone
	default:
		return errors.Wrapf(ErrUnknownCompression, "%q", o.Compression)
	}
	if o.ChunkSize < 0 {
		return errors.Errorf("compactwire: negative chunk size %d", o.ChunkSize)
	}
	if o.Level < 1 || o.Level > 22 {
		return errors.Errorf("compactwire: zstd level %d out of range [1, 22]", o.Level)
	}
	if o.MaxDecodedSize == 0 {
		o.MaxDecodedSize = DefaultOptions().MaxDecodedSize
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return nil
}
