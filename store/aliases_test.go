package store

import (
	"testing"
	"time"

	"amfkit/alias"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
)

func TestAliases_GetPut(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	_, err := GetAlias(db, "foo")
	require.True(t, errors.Is(err, leveldb.ErrNotFound))

	at := time.Unix(1600000000, 0)
	require.NoError(t, WithTx(db, func(tx *leveldb.Transaction) error {
		return PutAliasTx(tx, "foo", "com.example::Foo", at)
	}))
	info, err := GetAlias(db, "foo")
	require.NoError(t, err)
	require.Equal(t, "foo", info.Alias)
	require.Equal(t, "com.example::Foo", info.ClassName)
	require.True(t, at.Equal(info.RegisteredAt))

	require.NoError(t, DeleteAlias(db, "foo"))
	_, err = GetAlias(db, "foo")
	require.Error(t, err)

	require.Error(t, PutAlias(db, "", "x"))
}

func TestAliases_Stream(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	for _, name := range []string{"foo", "bar", "baz"} {
		require.NoError(t, PutAlias(db, name, "pkg."+name))
	}

	stream, err := StreamAliases(db, "")
	require.NoError(t, err)
	var names []string
	for {
		info, err := stream.Next()
		require.NoError(t, err)
		if info == nil {
			break
		}
		names = append(names, info.Alias)
	}
	require.NoError(t, stream.Close())
	require.Equal(t, []string{"bar", "baz", "foo"}, names)

	stream, err = StreamAliases(db, "baz")
	require.NoError(t, err)
	info, err := stream.Next()
	require.NoError(t, err)
	require.Equal(t, "foo", info.Alias)
	info, err = stream.Next()
	require.NoError(t, err)
	require.Nil(t, info)
	require.NoError(t, stream.Close())
}

func TestAliases_LoadInto(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	require.NoError(t, PutAlias(db, "com.example.Foo", "com.example::Foo"))
	require.NoError(t, PutAlias(db, "flex.Ack", "flex.messaging.messages::AcknowledgeMessage"))

	reg := alias.NewRegistry()
	n, err := LoadInto(db, reg)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	name, ok, err := reg.ClassNameByAlias("flex.Ack")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "flex.messaging.messages::AcknowledgeMessage", name)

	require.NoError(t, TruncateAliases(db))
	n, err = LoadInto(db, alias.NewRegistry())
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestWithTx_Rollback(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	err := WithTx(db, func(tx *leveldb.Transaction) error {
		require.NoError(t, PutAliasTx(tx, "foo", "pkg.Foo", time.Now()))
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")
	_, err = GetAlias(db, "foo")
	require.True(t, errors.Is(err, leveldb.ErrNotFound))

	require.Panics(t, func() {
		_ = WithTx(db, func(tx *leveldb.Transaction) error {
			require.NoError(t, PutAliasTx(tx, "foo", "pkg.Foo", time.Now()))
			panic("boom")
		})
	})
	_, err = GetAlias(db, "foo")
	require.True(t, errors.Is(err, leveldb.ErrNotFound))
}
