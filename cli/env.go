package cli

import (
	"amfkit/alias"
	"amfkit/amf"
	"amfkit/bytestream"
	"amfkit/config"
	"amfkit/log"
	"amfkit/store"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

var logger = log.WithModule("cli")

// Env is everything a command needs to build streams: the parsed config, the
// alias database and a registry populated from both.
type Env struct {
	HomeDir  string
	Config   *config.Config
	DB       *leveldb.DB
	Registry *alias.Registry
}

// OpenEnv reads the config file under homeDir, opens the alias database and
// loads every stored and configured alias into a fresh registry. Configured
// aliases win over stored ones.
func OpenEnv(homeDir string) (*Env, error) {
	cfg, err := config.ReadConfigFile(homeDir)
	if err != nil {
		return nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	db, err := store.Open(config.ExpandDBPath(homeDir))
	if err != nil {
		return nil, errors.Wrap(err, "error opening alias database")
	}
	reg, err := LoadRegistry(db, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Env{
		HomeDir:  homeDir,
		Config:   cfg,
		DB:       db,
		Registry: reg,
	}, nil
}

func LoadRegistry(db *leveldb.DB, cfg *config.Config) (*alias.Registry, error) {
	reg := alias.NewRegistry()
	stored, err := store.LoadInto(db, reg)
	if err != nil {
		return nil, errors.Wrap(err, "error loading stored aliases")
	}
	for name, className := range cfg.Aliases {
		if err := reg.RegisterQualifiedName(name, className); err != nil {
			return nil, errors.Wrapf(err, "invalid configured alias %q", name)
		}
	}
	logger.Debug("loaded aliases", "stored", stored, "configured", len(cfg.Aliases))
	return reg, nil
}

// Codecs returns AMF codecs bound to the environment's registry.
func (e *Env) Codecs() bytestream.Codecs {
	return amf.NewCodecs(e.Registry)
}

// NewStream wraps data in a stream configured from the [stream] section with
// AMF codecs bound to the environment's registry.
func (e *Env) NewStream(data []byte) (*bytestream.Stream, error) {
	opts, err := e.Config.StreamOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, bytestream.WithCodecs(e.Codecs()))
	return bytestream.Wrap(data, opts...), nil
}

func (e *Env) Close() error {
	return e.DB.Close()
}
