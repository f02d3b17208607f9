// Completion: 100% - Platform-specific module complete
//go:build linux

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"
)

// FileWatcher drives the -watch mode: an inotify instance over the source
// file, invoking onChange on every write. Editors that replace the file on
// save drop the watch with IN_IGNORED, so the path is re-armed after each
// event batch.
type FileWatcher struct {
	fd       int
	watchMap map[int]string
	onChange func(string)
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %v", err)
	}
	return &FileWatcher{
		fd:       fd,
		watchMap: make(map[int]string),
		onChange: onChange,
	}, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	wd, err := unix.InotifyAddWatch(fw.fd, absPath, unix.IN_MODIFY|unix.IN_CLOSE_WRITE)
	if err != nil {
		return fmt.Errorf("inotify_add_watch %s: %v", absPath, err)
	}
	fw.watchMap[wd] = absPath
	return nil
}

// Watch blocks reading inotify events until the descriptor is closed.
func (fw *FileWatcher) Watch() error {
	buf := make([]byte, unix.SizeofInotifyEvent*10+unix.NAME_MAX)
	for {
		n, err := unix.Read(fw.fd, buf)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}

		var changed []string
		var dropped []string
		offset := 0
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)

			path, ok := fw.watchMap[int(event.Wd)]
			if !ok {
				continue
			}
			if event.Mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE) != 0 {
				changed = append(changed, path)
			}
			if event.Mask&unix.IN_IGNORED != 0 {
				delete(fw.watchMap, int(event.Wd))
				dropped = append(dropped, path)
			}
		}

		for _, path := range dropped {
			if err := fw.AddFile(path); err == nil {
				changed = append(changed, path)
			}
		}
		seen := make(map[string]bool)
		for _, path := range changed {
			if !seen[path] {
				seen[path] = true
				fw.onChange(path)
			}
		}
	}
}

func (fw *FileWatcher) Close() error {
	return unix.Close(fw.fd)
}

// execProgram replaces the current process with the compiled executable.
func execProgram(path string, args []string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	argv := append([]string{absPath}, args...)
	return unix.Exec(absPath, argv, os.Environ())
}
