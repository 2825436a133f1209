package theme

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/kvstore"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "light", want: Normal},
		{in: "normal", want: Normal},
		{in: "high_contrast", want: HighContrast},
		{in: "high-contrast", want: HighContrast},
		{in: "dark", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "light", Normal.String())
	assert.Equal(t, "high_contrast", HighContrast.String())
	assert.Equal(t, Normal, HighContrast.Toggled())
}

func TestFlagDefaults(t *testing.T) {
	assert.Equal(t, Normal, NewFlag(nil, nil).Mode())

	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(StoreKey, "sepia"))
	assert.Equal(t, Normal, NewFlag(kv, nil).Mode())
}

func TestFlagToggleAndSet(t *testing.T) {
	kv := kvstore.NewMemory()
	f := NewFlag(kv, nil)

	assert.Equal(t, HighContrast, f.Toggle())
	value, ok, err := kv.Get(StoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "high_contrast", value)

	f.Set(Normal)
	assert.Equal(t, Normal, f.Mode())
	value, _, _ = kv.Get(StoreKey)
	assert.Equal(t, "light", value)
}

func TestFlagSurvivesClosedStore(t *testing.T) {
	kv := kvstore.NewMemory()
	f := NewFlag(kv, nil)
	require.NoError(t, kv.Close())

	assert.Equal(t, HighContrast, f.Toggle())
	assert.Equal(t, HighContrast, f.Mode())
}

func TestFlagPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loopview.db")

	kv, err := kvstore.OpenSQLite(path)
	require.NoError(t, err)
	NewFlag(kv, nil).Toggle()
	require.NoError(t, kv.Close())

	kv, err = kvstore.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	assert.Equal(t, HighContrast, NewFlag(kv, nil).Mode())
}

func TestFlagAttach(t *testing.T) {
	b := bus.New()
	f := NewFlag(nil, nil)
	detach := f.Attach(b)

	var seen []Mode
	b.Subscribe(func(m bus.Message) {
		if _, ok := m.(bus.ThemeChanged); ok {
			seen = append(seen, f.Mode())
		}
	})

	b.Publish(bus.ThemeChanged{})
	b.Publish(bus.SelectionChanged{LoopID: "L1"})
	b.Publish(bus.ThemeChanged{})
	assert.Equal(t, []Mode{HighContrast, Normal}, seen)

	detach()
	b.Publish(bus.ThemeChanged{})
	assert.Equal(t, Normal, f.Mode())
}
