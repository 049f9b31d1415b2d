package renumber

import (
	"fmt"
	"io"
	"os"
	"time"
)

// copyFile copies src to dst, keeping the permission bits and the
// modification time of src. dst is truncated if it exists, unless it is
// src itself. It returns the number of bytes copied.
func copyFile(src, dst string) (int64, error) {
	return copyWithFlags(src, dst, os.O_TRUNC)
}

// copyFileExclusive is copyFile that fails if dst already exists
func copyFileExclusive(src, dst string) (int64, error) {
	return copyWithFlags(src, dst, os.O_EXCL)
}

func copyWithFlags(src, dst string, flag int) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return 0, fmt.Errorf("%s and %s are the same file", src, dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|flag, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}
	if err := out.Close(); err != nil {
		return n, err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return n, err
	}
	// zero atime leaves the access time alone
	if err := os.Chtimes(dst, time.Time{}, info.ModTime()); err != nil {
		return n, err
	}
	return n, nil
}
