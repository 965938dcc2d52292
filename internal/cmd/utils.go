package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dosanma1/forge-deploy/internal/builder"
	"github.com/dosanma1/forge-deploy/internal/config"
	"github.com/dosanma1/forge-deploy/internal/corber"
	"github.com/dosanma1/forge-deploy/internal/deployer"
	"github.com/dosanma1/forge-deploy/internal/executor"
	"github.com/dosanma1/forge-deploy/internal/fsutil"
	"github.com/dosanma1/forge-deploy/internal/pipeline"
	"github.com/dosanma1/forge-deploy/internal/ui"
)

// newExecutor creates the process runner every plugin uses. Tests replace it.
var newExecutor = func() executor.Runner {
	return executor.NewOSRunner()
}

// session is the loaded configuration and console for one command.
type session struct {
	cfg      *config.Config
	resolver *config.Resolver
	ui       *ui.UI
}

// findConfig returns --config or searches up from the working directory.
func findConfig() (string, error) {
	if configPath != "" {
		return configPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path, err := config.Find(cwd)
	if err != nil {
		return "", fmt.Errorf("not in a forge-deploy project: %w", err)
	}
	return path, nil
}

func loadSession(cmd *cobra.Command) (*session, error) {
	path, err := findConfig()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.FileName, err)
	}

	resolver := config.NewResolver(cfg)
	return &session{
		cfg:      cfg,
		resolver: resolver,
		ui:       ui.New(cmd.ErrOrStderr(), resolver.ResolveVerbose(verbose)),
	}, nil
}

// newRegistry registers every plugin type with shared infrastructure.
func newRegistry(cfg *config.Config, fs fsutil.FS, ex executor.Runner) (*pipeline.Registry, error) {
	reg := pipeline.NewRegistry()

	if err := reg.Register(corber.Type, corber.Factory(
		corber.WithFS(fs),
		corber.WithRunnerFactory(corber.NewExecRunnerFactory(cfg.CorberBin, ex)),
	)); err != nil {
		return nil, err
	}

	if err := reg.Register(builder.PluginType, builder.PluginFactory(ex)); err != nil {
		return nil, err
	}

	for _, name := range deployer.ListDeployers() {
		factory, err := deployer.PluginFactory(name, ex)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(name, factory); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// plugins instantiates the selected plugin declarations.
func (s *session) plugins(fs fsutil.FS, only []string) ([]pipeline.Plugin, error) {
	decls, err := s.resolver.ResolvePlugins(only)
	if err != nil {
		return nil, err
	}

	reg, err := newRegistry(s.cfg, fs, newExecutor())
	if err != nil {
		return nil, err
	}

	return reg.Instantiate(decls)
}

func (s *session) newContext(distDir string) *pipeline.Context {
	return pipeline.NewContext(
		pipeline.Project{Name: s.cfg.Project.Name, Root: s.cfg.Project.Root},
		distDir,
		s.ui,
		pipeline.CommandOptions{Verbose: s.ui.Verbose()},
	)
}

// stagingFS returns the OS filesystem with a file counter for staging
// copies, and a func to clear the counter.
func (s *session) stagingFS() (fsutil.FS, func()) {
	if s.ui.Verbose() {
		return fsutil.NewOS(), func() {}
	}

	bar := ui.NewFileProgress(s.ui.Writer(), ui.IconPackage+" Staging web bundle")
	fs := fsutil.NewOS(fsutil.WithCopyObserver(func(string) {
		_ = bar.Add(1)
	}))
	return fs, func() { _ = bar.Finish() }
}

func printArtifacts(u *ui.UI, pctx *pipeline.Context) {
	for platform, artifacts := range pctx.Corber {
		for _, artifact := range artifacts {
			u.WriteLine("%s %s: %s", ui.IconPhone, platform, artifact)
		}
	}
	for name, published := range pctx.Deployments {
		u.WriteLine("%s %s: %d file(s) published", ui.IconRocket, name, len(published))
	}
}
