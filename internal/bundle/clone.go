package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Clone deep-copies the bundle at src to dst, replacing any prior contents at
// dst. Immediately after a successful call the destination is a structural
// duplicate of the source, ready for mutation. A failed partial copy removes
// the destination so no half-copied tree is ever addressable as a bundle.
func Clone(src, dst Bundle) error {
	if err := os.RemoveAll(dst.Path); err != nil {
		return fmt.Errorf("remove previous bundle %s: %w", dst.Path, err)
	}

	if err := copyTree(src.Path, dst.Path); err != nil {
		// Delete-on-failure: a partial clone must not survive the run.
		_ = os.RemoveAll(dst.Path)

		return fmt.Errorf("clone bundle %s: %w", src.Path, err)
	}

	return nil
}

// copyTree recursively copies a directory, preserving file modes and symlinks.
func copyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if err = os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("create directory %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", src, err)
	}

	for _, entry := range entries {
		var (
			srcPath = filepath.Join(src, entry.Name())
			dstPath = filepath.Join(dst, entry.Name())
		)

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			target, linkErr := os.Readlink(srcPath)
			if linkErr != nil {
				return fmt.Errorf("read symlink %s: %w", srcPath, linkErr)
			}

			if linkErr = os.Symlink(target, dstPath); linkErr != nil {
				return fmt.Errorf("create symlink %s: %w", dstPath, linkErr)
			}
		case entry.IsDir():
			if err = copyTree(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err = copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// copyFile copies a regular file, preserving its mode.
func copyFile(src, dst string) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}

	// Best-effort cleanup.
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()

		return fmt.Errorf("copy %s: %w", src, err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	return nil
}
