package metadb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

// boltBackend persists metadata entries in one bolt bucket per namespace,
// keyed by the raw 16-byte id, with msgpack-encoded entryRecord values.
type boltBackend struct {
	bdb *bbolt.DB
}

var boltNamespaces = []string{serversNamespace, databasesNamespace, tablesNamespace}

func openBoltBackend(path string, isTesting bool) (storeBackend, error) {
	bopt := *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if isTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
	}
	bdb, err := bbolt.Open(path, 0666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("metadb: %w", err)
	}
	err = bdb.Update(func(btx *bbolt.Tx) error {
		for _, ns := range boltNamespaces {
			_, err := btx.CreateBucketIfNotExists([]byte(ns))
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("metadb: %w", err)
	}
	return &boltBackend{bdb}, nil
}

func (b *boltBackend) PutRecord(namespace string, id uuid.UUID, rec entryRecord) error {
	raw, err := msgpack.Marshal(&rec)
	if err != nil {
		panic(fmt.Errorf("failed to encode entry record: %w", err))
	}
	return b.bdb.Update(func(btx *bbolt.Tx) error {
		return nonNil(btx.Bucket([]byte(namespace))).Put(id[:], raw)
	})
}

func (b *boltBackend) LoadAll(fn func(namespace string, id uuid.UUID, rec entryRecord) error) error {
	return b.bdb.View(func(btx *bbolt.Tx) error {
		for _, ns := range boltNamespaces {
			err := nonNil(btx.Bucket([]byte(ns))).ForEach(func(k, v []byte) error {
				id, err := uuid.FromBytes(k)
				if err != nil {
					return fmt.Errorf("%s: invalid key %x: %w", ns, k, err)
				}
				var rec entryRecord
				err = msgpack.Unmarshal(v, &rec)
				if err != nil {
					return fmt.Errorf("%s/%v: %w", ns, id, err)
				}
				return fn(ns, id, rec)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *boltBackend) Close() error {
	return b.bdb.Close()
}
