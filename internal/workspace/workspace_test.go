package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "corber"},
		{name: "corber-android"},
		{name: "firebase-appdistribution"},
		{name: "build2"},
		{name: "Corber", wantErr: true},
		{name: "corber_android", wantErr: true},
		{name: "-corber", wantErr: true},
		{name: "corber-", wantErr: true},
		{name: "2build", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.name)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindRootWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "forge-deploy.yaml"), []byte("{}"), 0o644))
	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindRoot(nested, "forge-deploy.yaml")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}

func TestFindRootNotFound(t *testing.T) {
	_, err := FindRoot(t.TempDir(), "forge-deploy-missing-marker.yaml")
	require.ErrorIs(t, err, ErrNotFound)
}
