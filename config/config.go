package config

import (
	"io"
	"time"

	"amfkit/bytestream"
	"amfkit/compression"
	"amfkit/log"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

type Config struct {
	LogLevel    string            `mapstructure:"log_level"`
	Stream      StreamConfig      `mapstructure:"stream"`
	Compression CompressionConfig `mapstructure:"compression"`
	Aliases     map[string]string `mapstructure:"aliases"`
}

type StreamConfig struct {
	Endian               string `mapstructure:"endian"`
	ObjectEncoding       int    `mapstructure:"object_encoding"`
	CompressionTimeoutMS int    `mapstructure:"compression_timeout_ms"`
}

type CompressionConfig struct {
	DefaultAlgorithm string `mapstructure:"default_algorithm"`
	BatchWorkers     int    `mapstructure:"batch_workers"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	return config, nil
}

func ConvertDuration(base int, unit time.Duration) time.Duration {
	return time.Duration(base) * unit
}

// Level parses LogLevel.
func (c *Config) Level() (log.Level, error) {
	return log.NewLevel(c.LogLevel)
}

// Algorithm parses the default compression algorithm.
func (c *Config) Algorithm() (compression.Algorithm, error) {
	return compression.ParseAlgorithm(c.Compression.DefaultAlgorithm)
}

// StreamOptions translates the [stream] section into stream options. A
// missing endian means big endian, the same as bytestream.New.
func (c *Config) StreamOptions() ([]bytestream.Option, error) {
	var endian bytestream.Endian
	switch c.Stream.Endian {
	case "", bytestream.BigEndian.String(), "big":
		endian = bytestream.BigEndian
	case bytestream.LittleEndian.String(), "little":
		endian = bytestream.LittleEndian
	default:
		return nil, errors.Errorf("invalid stream endian %q", c.Stream.Endian)
	}

	if c.Stream.ObjectEncoding != int(bytestream.AMF0) && c.Stream.ObjectEncoding != int(bytestream.AMF3) {
		return nil, errors.Errorf("invalid object encoding %d", c.Stream.ObjectEncoding)
	}
	enc := bytestream.ObjectEncoding(c.Stream.ObjectEncoding)
	if c.Stream.CompressionTimeoutMS < 0 {
		return nil, errors.Errorf("negative compression timeout %d", c.Stream.CompressionTimeoutMS)
	}

	return []bytestream.Option{
		bytestream.WithEndian(endian),
		bytestream.WithObjectEncoding(enc),
		bytestream.WithCompressionTimeout(ConvertDuration(c.Stream.CompressionTimeoutMS, time.Millisecond)),
	}, nil
}
