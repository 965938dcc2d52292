package corber

// Strategy returns the directory holding a platform's packaged binaries for
// a native project rooted at nativeRoot.
type Strategy func(nativeRoot string) string

// Strategies maps platform identifiers to their discovery strategy.
type Strategies map[string]Strategy

// DefaultStrategies returns the built-in table. Only android is known.
func DefaultStrategies() Strategies {
	return Strategies{
		"android": func(nativeRoot string) string {
			return nativeRoot + "/platforms/android/build/outputs/apk/"
		},
	}
}

// OutputDir resolves the output directory for platform. It returns false
// for platforms without a strategy.
func (s Strategies) OutputDir(platform, nativeRoot string) (string, bool) {
	strategy, ok := s[platform]
	if !ok || strategy == nil {
		return "", false
	}
	return strategy(nativeRoot), true
}

// artifactPaths joins listed entry names onto dir.
func artifactPaths(dir string, names []string) []string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, dir+name)
	}
	return paths
}
