package settings

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"
)

// ErrNoValue is returned when a key has never been stored
var ErrNoValue = errors.New("no such setting")

const (
	bucketGeometry = "window_geometry"
	bucketValues   = "values"
)

var initDB = map[string]func(tx *bolt.Tx) error{
	"initialize window geometry table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketGeometry))
		return err
	},
	"initialize value table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketValues))
		return err
	},
}

// Store persists application settings in a bbolt file
// Registered as the "settings" service of every window
type Store struct {
	db *bolt.DB
}

// Geometry is the saved placement of one window
type Geometry struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Open opens or creates the settings file at path
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open settings %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return errors.Wrap(err, name)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the settings file
func (s *Store) Close() error {
	return s.db.Close()
}

// Geometry returns the saved geometry of the window identified by key
func (s *Store) Geometry(key string) (Geometry, error) {
	var g Geometry
	err := s.get(bucketGeometry, key, &g)
	return g, err
}

// SetGeometry saves the geometry of the window identified by key
func (s *Store) SetGeometry(key string, g Geometry) error {
	return s.put(bucketGeometry, key, g)
}

// Value decodes the setting under key into out
func (s *Store) Value(key string, out any) error {
	return s.get(bucketValues, key, out)
}

// SetValue stores v under key
func (s *Store) SetValue(key string, v any) error {
	return s.put(bucketValues, key, v)
}

// DeleteValue removes the setting under key
func (s *Store) DeleteValue(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketValues)).Delete([]byte(key))
	})
}

// Keys lists stored value keys in byte order
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketValues)).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}

func (s *Store) get(bucket, key string, out any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucket)).Get([]byte(key))
		if v == nil {
			return errors.Wrap(ErrNoValue, key)
		}
		return errors.Wrapf(yaml.Unmarshal(v, out), "decode %s", key)
	})
}

func (s *Store) put(bucket, key string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(key), data)
	})
}
