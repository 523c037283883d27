package store

import (
	"encoding/json"
	"time"

	"amfkit/alias"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	aliasesPrefix   = Prefixer("aliases")
	aliasDataPrefix = Prefixer(string(aliasesPrefix("alias")))
)

type AliasInfo struct {
	Alias        string
	ClassName    string
	RegisteredAt time.Time
}

func (a *AliasInfo) MarshalJSON() ([]byte, error) {
	out := struct {
		Alias        string `json:"alias"`
		ClassName    string `json:"class_name"`
		RegisteredAt int64  `json:"registered_at"`
	}{
		a.Alias,
		a.ClassName,
		a.RegisteredAt.Unix(),
	}
	return json.Marshal(out)
}

func (a *AliasInfo) UnmarshalJSON(data []byte) error {
	out := &struct {
		Alias        string `json:"alias"`
		ClassName    string `json:"class_name"`
		RegisteredAt int64  `json:"registered_at"`
	}{}
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}
	a.Alias = out.Alias
	a.ClassName = out.ClassName
	a.RegisteredAt = time.Unix(out.RegisteredAt, 0)
	return nil
}

// GetAlias returns the stored registration for alias. A missing alias is
// leveldb.ErrNotFound.
func GetAlias(db *leveldb.DB, name string) (*AliasInfo, error) {
	res, err := db.Get(aliasDataPrefix(name), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error getting alias")
	}
	info := new(AliasInfo)
	if err := json.Unmarshal(res, info); err != nil {
		return nil, errors.Wrap(err, "error decoding alias")
	}
	return info, nil
}

func PutAliasTx(tx *leveldb.Transaction, name, className string, at time.Time) error {
	if name == "" || className == "" {
		return errors.New("alias and class name must not be empty")
	}
	data, err := json.Marshal(&AliasInfo{
		Alias:        name,
		ClassName:    className,
		RegisteredAt: at,
	})
	if err != nil {
		return errors.Wrap(err, "error encoding alias")
	}
	if err := tx.Put(aliasDataPrefix(name), data, nil); err != nil {
		return errors.Wrap(err, "error inserting alias")
	}
	return nil
}

// PutAlias stores one registration in its own transaction.
func PutAlias(db *leveldb.DB, name, className string) error {
	return WithTx(db, func(tx *leveldb.Transaction) error {
		return PutAliasTx(tx, name, className, time.Now())
	})
}

func DeleteAliasTx(tx *leveldb.Transaction, name string) error {
	if err := tx.Delete(aliasDataPrefix(name), nil); err != nil {
		return errors.Wrap(err, "error deleting alias")
	}
	return nil
}

func DeleteAlias(db *leveldb.DB, name string) error {
	return WithTx(db, func(tx *leveldb.Transaction) error {
		return DeleteAliasTx(tx, name)
	})
}

type AliasInfoStream struct {
	iter iterator.Iterator
}

// Next returns the next registration in alias order, or nil at the end.
func (s *AliasInfoStream) Next() (*AliasInfo, error) {
	if !s.iter.Next() {
		return nil, nil
	}

	info := new(AliasInfo)
	if err := json.Unmarshal(s.iter.Value(), info); err != nil {
		return nil, errors.Wrap(err, "error decoding alias")
	}
	return info, nil
}

func (s *AliasInfoStream) Close() error {
	s.iter.Release()
	return s.iter.Error()
}

// StreamAliases iterates registrations in alias order, starting after start
// when it is not empty.
func StreamAliases(db *leveldb.DB, start string) (*AliasInfoStream, error) {
	if start == "" {
		return &AliasInfoStream{
			iter: db.NewIterator(util.BytesPrefix(aliasDataPrefix()), nil),
		}, nil
	}

	iterRange := &util.Range{
		Start: aliasDataPrefix(start),
		Limit: aliasDataPrefix(string([]byte{0xff})),
	}
	iterRange.Start = append(iterRange.Start, 0x00)
	return &AliasInfoStream{
		iter: db.NewIterator(iterRange, nil),
	}, nil
}

// LoadInto registers every stored alias with reg and returns how many were
// loaded.
func LoadInto(db *leveldb.DB, reg *alias.Registry) (int, error) {
	stream, err := StreamAliases(db, "")
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	var n int
	for {
		info, err := stream.Next()
		if err != nil {
			return n, err
		}
		if info == nil {
			break
		}
		if err := reg.RegisterQualifiedName(info.Alias, info.ClassName); err != nil {
			return n, errors.Wrapf(err, "error registering alias %q", info.Alias)
		}
		n++
	}
	logger.Debug("loaded aliases", "count", n)
	return n, nil
}

func TruncateAliases(db *leveldb.DB) error {
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		iter := tx.NewIterator(util.BytesPrefix(aliasesPrefix()), nil)
		defer iter.Release()
		for iter.Next() {
			if err := tx.Delete(iter.Key(), nil); err != nil {
				return errors.Wrap(err, "error deleting alias store key")
			}
		}
		return iter.Error()
	})
	if err != nil {
		return errors.Wrap(err, "error truncating alias store")
	}
	return nil
}
