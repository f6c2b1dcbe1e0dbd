/*
Copyright the go-utils contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// Interface defines the methods the logging package needs for
// interacting with an underlying file system.
type Interface interface {
	Create(name string) (io.WriteCloser, error)
	OpenFile(name string, flag int, perm os.FileMode) (io.WriteCloser, error)
	ReadFile(name string) ([]byte, error)
	Remove(name string) error
	Stat(name string) (os.FileInfo, error)
}

// NewFileSystem returns an Interface backed by the OS file system.
func NewFileSystem() Interface {
	return &aferoFileSystem{fs: afero.NewOsFs()}
}

// NewMemoryFileSystem returns an Interface backed by an in-memory
// file system, for use in tests.
func NewMemoryFileSystem() Interface {
	return &aferoFileSystem{fs: afero.NewMemMapFs()}
}

type aferoFileSystem struct {
	fs afero.Fs
}

func (f *aferoFileSystem) Create(name string) (io.WriteCloser, error) {
	return f.fs.Create(name)
}

func (f *aferoFileSystem) OpenFile(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	return f.fs.OpenFile(name, flag, perm)
}

func (f *aferoFileSystem) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(f.fs, name)
}

func (f *aferoFileSystem) Remove(name string) error {
	return f.fs.Remove(name)
}

func (f *aferoFileSystem) Stat(name string) (os.FileInfo, error) {
	return f.fs.Stat(name)
}
