package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketPolicies = "policies"
	BucketCurves   = "curves"

	policiesKey = "all"
)

// Persistence stores the last confirmed hardware state between
// sessions, so the panel can render last-known values before the
// first poll completes.
type Persistence interface {
	Init() error

	SavePolicies(policies []hwio.Policy) error
	LoadPolicies() ([]hwio.Policy, error)

	SaveCurve(c hwio.Curve) error
	LoadCurves() ([]hwio.Curve, error)
	DeleteCurve(header hwio.HeaderID, mode hwio.ControlMode) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	return &persistence{
		dbPath: dbPath,
	}
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		return os.MkdirAll(parentDir, 0755)
	}
	return err
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (p persistence) SavePolicies(policies []hwio.Policy) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(policies)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketPolicies))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(policiesKey), data)
	})
}

func (p persistence) LoadPolicies() ([]hwio.Policy, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var policies []hwio.Policy
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketPolicies))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(policiesKey))
		if v == nil {
			return os.ErrNotExist
		}

		if err := json.Unmarshal(v, &policies); err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved policies: %v", err)
			if err := b.Delete([]byte(policiesKey)); err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", policiesKey, err)
			}
			return os.ErrNotExist
		}
		return nil
	})

	return policies, err
}

func (p persistence) SaveCurve(c hwio.Curve) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := hwio.CurveKey(c.HeaderID, c.Mode)
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketCurves))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(key), data)
	})
}

func (p persistence) LoadCurves() ([]hwio.Curve, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var curves []hwio.Curve
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketCurves))
		if b == nil {
			// nothing persisted yet
			return nil
		}

		var corrupt [][]byte
		err := b.ForEach(func(k []byte, v []byte) error {
			var c hwio.Curve
			if err := json.Unmarshal(v, &c); err != nil {
				ui.Warning("Unable to unmarshal saved curve %s: %v", string(k), err)
				corrupt = append(corrupt, k)
				return nil
			}
			curves = append(curves, c)
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range corrupt {
			if err := b.Delete(k); err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", string(k), err)
			}
		}
		return nil
	})

	return curves, err
}

func (p persistence) DeleteCurve(header hwio.HeaderID, mode hwio.ControlMode) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := hwio.CurveKey(header, mode)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketCurves))
		if b == nil {
			// no curve bucket yet
			return nil
		}
		if v := b.Get([]byte(key)); v == nil {
			// no data for given key
			return nil
		}
		return b.Delete([]byte(key))
	})
}
