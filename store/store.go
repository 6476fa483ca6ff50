// Package store persists the storefront collections as whole-file JSON documents.
//
// Every collection is read and written in full. Read maps a missing or unreadable
// file to the collection's empty document, so a corrupted file looks the same as one
// that was never created. Mutations made through Update are serialized per
// collection inside this process; other processes writing the same directory are
// not coordinated with.
package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/im7mortal/kmutex"
	"github.com/juju/errors"
)

// Collection names one JSON document in the data directory.
type Collection string

const (
	Users     Collection = "users.json"
	Orders    Collection = "orders.json"
	Feedbacks Collection = "feedbacks.json"
)

// OrderLog is the append-only plaintext order trail.
const OrderLog = "orders.txt"

// emptyDocument is what Read yields for a collection with no usable file.
func (c Collection) emptyDocument() []byte {
	if c == Users {
		return []byte("{}")
	}
	return []byte("[]")
}

type Store struct {
	dir   string
	locks *kmutex.Kmutex
}

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Annotatef(err, "creating data directory %s", dir)
	}
	return &Store{
		dir:   dir,
		locks: kmutex.New(),
	}, nil
}

// Dir is the data directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Read decodes collection c into out. A missing, unreadable or corrupt file
// decodes the empty document instead and is not reported as an error.
func (s *Store) Read(c Collection, out interface{}) {
	data, err := os.ReadFile(s.path(string(c)))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Reading %s failed, using empty collection: %v", c, err)
		}
		data = c.emptyDocument()
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("⚠️ Parsing %s failed, using empty collection: %v", c, err)
		// A type mismatch can leave out partly filled.
		if v := reflect.ValueOf(out); v.Kind() == reflect.Pointer && !v.IsNil() {
			v.Elem().Set(reflect.Zero(v.Elem().Type()))
		}
		_ = json.Unmarshal(c.emptyDocument(), out)
	}
}

// Write replaces collection c with doc. The file is swapped in with a rename so
// a concurrent Read sees either the old or the new document.
func (s *Store) Write(c Collection, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Annotatef(err, "encoding %s", c)
	}

	tmp, err := os.CreateTemp(s.dir, string(c)+".*.tmp")
	if err != nil {
		return errors.Annotatef(err, "writing %s", c)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Annotatef(err, "writing %s", c)
	}
	if err := tmp.Close(); err != nil {
		return errors.Annotatef(err, "writing %s", c)
	}
	if err := os.Rename(tmp.Name(), s.path(string(c))); err != nil {
		return errors.Annotatef(err, "replacing %s", c)
	}
	return nil
}

// Update runs a read-modify-write cycle on c while holding the collection's lock.
// out receives the current document, fn mutates it, and the result is written
// back unless fn returns an error.
func (s *Store) Update(c Collection, out interface{}, fn func() error) error {
	s.locks.Lock(c)
	defer s.locks.Unlock(c)

	s.Read(c, out)
	if err := fn(); err != nil {
		return err
	}
	return errors.Trace(s.Write(c, out))
}

// AppendLine adds line and a trailing newline to the named plaintext log.
func (s *Store) AppendLine(name, line string) error {
	s.locks.Lock(name)
	defer s.locks.Unlock(name)

	f, err := os.OpenFile(s.path(name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Annotatef(err, "opening %s", name)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return errors.Annotatef(err, "appending to %s", name)
	}
	return nil
}
