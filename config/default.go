package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"amfkit/bytestream"
	"amfkit/compression"
	"amfkit/log"

	"github.com/pkg/errors"
)

const ConfigFilename = "config.toml"

var DefaultConfig = Config{
	LogLevel: log.LevelInfo.String(),
	Stream: StreamConfig{
		Endian:               bytestream.BigEndian.String(),
		ObjectEncoding:       int(bytestream.AMF3),
		CompressionTimeoutMS: int(bytestream.DefaultCompressionTimeout.Milliseconds()),
	},
	Compression: CompressionConfig{
		DefaultAlgorithm: compression.Zlib.String(),
		BatchWorkers:     4,
	},
	Aliases: map[string]string{},
}

var defaultConfigTemplate *template.Template

const defaultConfigTemplateText = `# amfctl Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Configures how streams read and write primitives.
[stream]
  # Sets the byte order of multi-byte values. Can be bigEndian
  # or littleEndian.
  endian = "{{.Stream.Endian}}"
  # Sets the object encoding used by readObject and writeObject.
  # Can be 0 (AMF0) or 3 (AMF3).
  object_encoding = {{.Stream.ObjectEncoding}}
  # Sets how long compress and uncompress wait for a backend
  # before giving up. 0 waits forever.
  compression_timeout_ms = {{.Stream.CompressionTimeoutMS}}

# Configures compression commands.
[compression]
  # Sets the algorithm used when none is given. Can be one of
  # deflate, zlib or lzma.
  default_algorithm = "{{.Compression.DefaultAlgorithm}}"
  # Sets how many files the batch command compresses at once.
  batch_workers = {{.Compression.BatchWorkers}}

# Maps class aliases to qualified class names. These are
# registered on startup along with the ones added by
# amfctl alias add. For example:
#   "flex.messaging.messages.AcknowledgeMessage" = "flex.messaging.messages::AcknowledgeMessage"
[aliases]
{{- range $alias, $name := .Aliases}}
  "{{$alias}}" = "{{$name}}"
{{- end}}
`

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFilename), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFilename), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
