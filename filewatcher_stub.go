//go:build !linux

package main

import (
	"errors"
	"os/exec"
)

// The compiler only targets Linux; on other hosts the watch and exec paths
// degrade gracefully so the package still builds.

type FileWatcher struct {
	onChange func(string)
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	return nil, errors.New("watch mode requires Linux")
}

func (fw *FileWatcher) AddFile(path string) error { return errors.New("watch mode requires Linux") }
func (fw *FileWatcher) Watch() error              { return errors.New("watch mode requires Linux") }
func (fw *FileWatcher) Close() error              { return nil }

func execProgram(path string, args []string) error {
	cmd := exec.Command(path, args...)
	cmd.Stdin = nil
	return cmd.Run()
}
