package corber

import (
	"github.com/dosanma1/forge-deploy/internal/pipeline"
)

// NativePathFunc resolves the native (Cordova) project root for a project.
type NativePathFunc func(project pipeline.Project) string

// CordovaPath is corber's layout: the Cordova project lives in
// <root>/corber/cordova.
func CordovaPath(project pipeline.Project) string {
	return project.Root + "/corber/cordova"
}

// wwwDir is where Cordova expects the web bundle.
func wwwDir(nativeRoot string) string {
	return nativeRoot + "/www"
}
