//go:build !linux

package source

import (
	"fmt"
	"runtime"

	"github.com/grovetools/file-preview/errors"
	"github.com/sirupsen/logrus"
)

func newInotify(logger *logrus.Entry) (Source, error) {
	return nil, errors.WatchUnavailable("inotify", fmt.Errorf("inotify is not available on %s", runtime.GOOS))
}
