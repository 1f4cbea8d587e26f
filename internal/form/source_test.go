package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	templates  map[string]*Template
	defaultTpl *Template
	err        error
}

func (f *fakeStore) GetTemplate(_ context.Context, id string) (*Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.templates[id]; ok {
		return t, nil
	}
	return nil, ErrTemplateNotFound
}

func (f *fakeStore) GetDefault(_ context.Context) (*Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.defaultTpl == nil {
		return nil, ErrTemplateNotFound
	}
	return f.defaultTpl, nil
}

func TestFallbackSource(t *testing.T) {
	ctx := context.Background()
	custom := testTemplate()
	custom.ID = "custom"
	storedDefault := testTemplate()
	storedDefault.ID = "stored-default"

	t.Run("nil store serves built-in template", func(t *testing.T) {
		got, err := NewFallbackSource(nil).Template(ctx, "anything")
		require.NoError(t, err)
		assert.Equal(t, DefaultTemplateID, got.ID)
	})

	t.Run("explicit id", func(t *testing.T) {
		src := NewFallbackSource(&fakeStore{templates: map[string]*Template{"custom": custom}})
		got, err := src.Template(ctx, "custom")
		require.NoError(t, err)
		assert.Equal(t, "custom", got.ID)
	})

	t.Run("missing id falls back to stored default", func(t *testing.T) {
		src := NewFallbackSource(&fakeStore{defaultTpl: storedDefault})
		got, err := src.Template(ctx, "gone")
		require.NoError(t, err)
		assert.Equal(t, "stored-default", got.ID)
	})

	t.Run("no stored default falls back to built-in", func(t *testing.T) {
		src := NewFallbackSource(&fakeStore{})
		got, err := src.Template(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultTemplateID, got.ID)
	})

	t.Run("custom fallback", func(t *testing.T) {
		src := NewFallbackSource(&fakeStore{}, WithFallback(custom))
		got, err := src.Template(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "custom", got.ID)
	})

	t.Run("configured default id", func(t *testing.T) {
		store := &fakeStore{templates: map[string]*Template{"custom": custom}, defaultTpl: storedDefault}
		src := NewFallbackSource(store, WithDefaultID("custom"))

		got, err := src.Template(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "custom", got.ID)

		got, err = NewFallbackSource(store, WithDefaultID("retired")).Template(ctx, DefaultTemplateID)
		require.NoError(t, err)
		assert.Equal(t, "stored-default", got.ID)
	})

	t.Run("store errors are not masked", func(t *testing.T) {
		boom := errors.New("connection refused")
		src := NewFallbackSource(&fakeStore{err: boom})

		_, err := src.Template(ctx, "custom")
		assert.ErrorIs(t, err, boom)

		_, err = src.Template(ctx, "")
		assert.ErrorIs(t, err, boom)
	})
}

func TestNewRepository(t *testing.T) {
	t.Run("nil pool returns error", func(t *testing.T) {
		repo, err := NewRepository(nil)
		assert.Nil(t, repo)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database pool is required")
	})
}
