package deployer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/forge-deploy/internal/config"
	"github.com/dosanma1/forge-deploy/internal/executor"
	"github.com/dosanma1/forge-deploy/internal/executor/executortest"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
	"github.com/dosanma1/forge-deploy/internal/ui"
)

func TestFirebaseAppDistributionDeploy(t *testing.T) {
	rec := &executortest.Recorder{}
	d := NewFirebaseAppDistribution(rec)

	uploaded, err := d.Deploy(context.Background(), &DeployOptions{
		Name:        "beta",
		Artifacts:   []string{"/out/app-debug.apk", "/out/app-release.apk"},
		ProjectRoot: "/app",
		Options: map[string]any{
			"appId":        "1:123:android:abc",
			"groups":       []any{"qa", "beta"},
			"releaseNotes": "nightly",
			"project":      "my-project",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/app-debug.apk", "/out/app-release.apk"}, uploaded)

	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "firebase", calls[0].Program)
	assert.Equal(t, "/app", calls[0].Dir)
	assert.Equal(t, []string{
		"appdistribution:distribute", "/out/app-debug.apk",
		"--app", "1:123:android:abc",
		"--groups", "qa,beta",
		"--release-notes", "nightly",
		"--project", "my-project",
	}, calls[0].Args)
	assert.Equal(t, "/out/app-release.apk", calls[1].Args[1])
}

func TestFirebaseAppDistributionErrors(t *testing.T) {
	t.Run("requires app id", func(t *testing.T) {
		_, err := NewFirebaseAppDistribution(&executortest.Recorder{}).Deploy(context.Background(), &DeployOptions{Name: "beta"})
		assert.ErrorContains(t, err, "requires 'appId'")
	})

	t.Run("rejects static bundles", func(t *testing.T) {
		rec := &executortest.Recorder{}
		_, err := NewFirebaseAppDistribution(rec).Deploy(context.Background(), &DeployOptions{
			Artifacts: []string{"/app/dist"},
			Options:   map[string]any{"appId": "x"},
		})
		assert.ErrorContains(t, err, "requires a packaged app")
		assert.Empty(t, rec.Calls())
	})

	t.Run("stops at first failed upload", func(t *testing.T) {
		cause := errors.New("exit status 2")
		rec := &executortest.Recorder{}
		rec.RunFunc = func(_ context.Context, cmd executor.Command) error {
			if cmd.Args[1] == "/out/b.apk" {
				return cause
			}
			return nil
		}

		uploaded, err := NewFirebaseAppDistribution(rec).Deploy(context.Background(), &DeployOptions{
			Artifacts: []string{"/out/a.apk", "/out/b.apk", "/out/c.apk"},
			Options:   map[string]any{"appId": "x"},
		})
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, []string{"/out/a.apk"}, uploaded)
		assert.Len(t, rec.Calls(), 2)
	})
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"firebase-appdistribution"}, ListDeployers())

	d, err := GetDeployer("firebase-appdistribution", nil)
	require.NoError(t, err)
	assert.Equal(t, "firebase-appdistribution", d.Name())

	_, err = GetDeployer("helm", nil)
	assert.EqualError(t, err, "unknown deployer: helm")

	_, err = PluginFactory("helm", nil)
	assert.Error(t, err)
}

func TestPlugin(t *testing.T) {
	rec := &executortest.Recorder{}
	factory, err := PluginFactory("firebase-appdistribution", rec)
	require.NoError(t, err)

	reg := pipeline.NewRegistry()
	require.NoError(t, reg.Register("firebase-appdistribution", factory))

	t.Run("appId is required at configuration", func(t *testing.T) {
		_, err := reg.Instantiate([]config.PluginConfig{{Name: "beta", Type: "firebase-appdistribution"}})
		assert.ErrorContains(t, err, "appId is required")
	})

	plugins, err := reg.Instantiate([]config.PluginConfig{{
		Name:   "beta",
		Type:   "firebase-appdistribution",
		Config: config.NewOptions("appId", "1:123:android:abc"),
	}})
	require.NoError(t, err)

	t.Run("uploads platform artifacts", func(t *testing.T) {
		pctx := pipeline.NewContext(pipeline.Project{Root: "/app"}, "/app/dist", nil, pipeline.CommandOptions{})
		pctx.Corber = map[string][]string{"android": {"/out/app.apk"}}

		require.NoError(t, pipeline.NewRunner(plugins...).Run(context.Background(), pctx, pipeline.StageDeploy))
		assert.Equal(t, map[string][]string{"beta": {"/out/app.apk"}}, pctx.Deployments)
		require.Len(t, rec.Calls(), 1)
	})

	t.Run("warns without artifacts", func(t *testing.T) {
		out := &bytes.Buffer{}
		pctx := pipeline.NewContext(pipeline.Project{Root: "/app"}, "/app/dist", ui.New(out, false), pipeline.CommandOptions{})

		require.NoError(t, pipeline.NewRunner(plugins...).Run(context.Background(), pctx, pipeline.StageDeploy))
		assert.Empty(t, pctx.Deployments)
		assert.Contains(t, out.String(), "No android artifacts to deploy")
		assert.Len(t, rec.Calls(), 1)
	})
}
