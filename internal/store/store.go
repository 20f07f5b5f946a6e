// Package store persists the todo collection as one JSON document in a
// key-value backend.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"todopad/backend"
	"todopad/internal/todo"
	"todopad/internal/utils"
)

// TodoAppKey is the key the collection is stored under.
const TodoAppKey = "todo-app"

// ErrMalformed is returned when the stored value is not a todo collection.
var ErrMalformed = errors.New("malformed todo data")

const collectionSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "completed"],
		"properties": {
			"id": {"type": "integer"},
			"title": {"type": "string"},
			"completed": {"type": "boolean"}
		}
	}
}`

var schema = jsonschema.MustCompileString("todo-app.schema.json", collectionSchema)

// Store implements todo.Repository over a backend.KVStore.
type Store struct {
	kv  backend.KVStore
	key string
}

// New returns a store that keeps the collection under TodoAppKey.
func New(kv backend.KVStore) *Store {
	return &Store{kv: kv, key: TodoAppKey}
}

// Load reads and decodes the collection. A missing key, an empty value and
// a JSON null all mean nothing was stored.
func (s *Store) Load(ctx context.Context) (todo.Collection, bool, error) {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.key, err)
	}
	data = bytes.TrimSpace(data)
	if !ok || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, false, nil
	}

	c, err := Decode(data)
	if err != nil {
		return nil, false, err
	}
	s.logRevision(ctx)
	return c, true, nil
}

// Save encodes c and overwrites the stored value.
func (s *Store) Save(ctx context.Context, c todo.Collection) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	utils.Debugf("wrote %d todos to %s", len(c), s.key)
	s.logRevision(ctx)
	return nil
}

// Reset removes the stored value. The next Load reports it absent.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("delete %s: %w", s.key, err)
	}
	utils.Debugf("removed %s", s.key)
	return nil
}

func (s *Store) logRevision(ctx context.Context) {
	r, ok := s.kv.(backend.Revisioner)
	if !ok || !utils.GetLogger().IsVerbose() {
		return
	}
	if rev, err := r.Revision(ctx, s.key); err == nil && rev != "" {
		utils.Debugf("%s revision %s", s.key, rev)
	}
}

// Encode renders c in the persisted layout. A nil collection encodes as an
// empty array.
func Encode(c todo.Collection) ([]byte, error) {
	if c == nil {
		c = todo.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode todos: %w", err)
	}
	return data, nil
}

// Decode parses the persisted layout. Data that is not JSON or does not
// have the collection shape wraps ErrMalformed.
func Decode(data []byte) (todo.Collection, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, schemaMessage(err))
	}

	var c todo.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return c, nil
}

// schemaMessage reduces a validation error to its first leaf cause.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
