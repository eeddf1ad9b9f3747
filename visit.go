package tnpeff

import (
	stdpath "path"
	"strings"

	"github.com/pkg/errors"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
)

// LeafFunc is called for every object that is not a directory. dir is the
// path of the directory holding the key, "" for the top level.
type LeafFunc func(dir string, key riofs.Key, obj root.Object) error

// DirFunc is called for every directory below the visited one, before its
// content is visited.
type DirFunc func(path string, dir riofs.Directory) error

// Visit walks dir depth-first in key order. Directories are passed to onDir,
// which may be nil, and then descended into; all other objects are passed to
// onLeaf. The first error stops the walk and is returned; errors from the
// callbacks are returned as is.
func Visit(dir riofs.Directory, onLeaf LeafFunc, onDir DirFunc) error {
	return visit("", dir, onLeaf, onDir)
}

func visit(cur string, dir riofs.Directory, onLeaf LeafFunc, onDir DirFunc) error {
	for _, key := range dir.Keys() {
		obj, err := key.Object()
		if err != nil {
			return errors.Wrapf(err, "could not read %q", stdpath.Join(cur, key.Name()))
		}

		sub, ok := obj.(riofs.Directory)
		if !ok {
			if err := onLeaf(cur, key, obj); err != nil {
				return err
			}
			continue
		}

		p := stdpath.Join(cur, key.Name())
		if onDir != nil {
			if err := onDir(p, sub); err != nil {
				return err
			}
		}
		if err := visit(p, sub, onLeaf, onDir); err != nil {
			return err
		}
	}
	return nil
}

// SplitPath splits "<disk-path>:<internal-path>" into its two parts. A path
// without a colon is a plain file name.
func SplitPath(p string) (file, internal string) {
	i := strings.LastIndex(p, ":")
	if i < 0 || strings.HasPrefix(p[i:], "://") {
		return p, ""
	}
	return p[:i], strings.Trim(p[i+1:], "/")
}

// OpenDir returns the directory at the internal path below dir. An empty
// path returns dir itself.
func OpenDir(dir riofs.Directory, internal string) (riofs.Directory, error) {
	internal = strings.Trim(internal, "/")
	if internal == "" {
		return dir, nil
	}
	obj, err := riofs.Dir(dir).Get(internal)
	if err != nil {
		return nil, errors.Wrapf(err, "could not find directory %q", internal)
	}
	sub, ok := obj.(riofs.Directory)
	if !ok {
		return nil, errors.Errorf("%q is a %s, not a directory", internal, obj.Class())
	}
	return sub, nil
}
