package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefkit/prefkit/pkg/prefs"
	"github.com/prefkit/prefkit/pkg/types"
)

// The full path: a skeleton over a cached yaml store, saved, then read back
// through a second cache as a fresh process would.
func TestSkeletonOverSharedStore(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendYAML, Dir: dir}

	c1, err := NewCache(cfg)
	require.NoError(t, err)

	h, err := c1.OpenStore(types.NoAssociation, "appsettings", types.SimpleConfig, types.GenericConfigLocation)
	require.NoError(t, err)

	var showTips bool
	var timeout int32
	s := prefs.NewSkeleton(h)
	s.SetCurrentGroup("General")
	_, err = s.AddBool("ShowTips", &showTips, true, "")
	require.NoError(t, err)
	s.SetCurrentGroup("Session")
	timeoutItem, err := s.AddInt("Timeout", &timeout, 60, "")
	require.NoError(t, err)

	showTips = false
	timeoutItem.SetValue(300)
	require.NoError(t, s.Save())
	require.NoError(t, h.Release())
	require.NoError(t, c1.Close())

	c2, err := NewCache(cfg)
	require.NoError(t, err)
	defer c2.Close()

	h2, err := c2.OpenStore(types.NoAssociation, "appsettings", types.SimpleConfig, types.GenericConfigLocation)
	require.NoError(t, err)
	defer h2.Release()

	var showTips2 bool
	var timeout2 int32
	s2 := prefs.NewSkeleton(h2)
	s2.SetCurrentGroup("General")
	_, err = s2.AddBool("ShowTips", &showTips2, true, "")
	require.NoError(t, err)
	s2.SetCurrentGroup("Session")
	_, err = s2.AddInt("Timeout", &timeout2, 60, "")
	require.NoError(t, err)

	assert.False(t, showTips2)
	assert.Equal(t, int32(300), timeout2)
	assert.False(t, s2.IsSaveNeeded())
}
