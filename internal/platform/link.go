package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrSourceMissing is returned by LinkFile when the source does not exist.
var ErrSourceMissing = errors.New("source file missing")

// LinkFile makes dst refer to the same content as src. Any existing dst is
// removed first. A hard link is attempted; when the filesystem refuses (cross
// device, Windows without privileges) the file is copied instead. It reports
// whether a hard link was used.
func LinkFile(src, dst string) (linked bool, err error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("%s: %w", src, ErrSourceMissing)
		}
		return false, fmt.Errorf("stat %s: %w", src, err)
	}

	if _, err := os.Lstat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return false, fmt.Errorf("removing stale %s: %w", dst, err)
		}
	}

	if err := os.Link(src, dst); err == nil {
		return true, nil
	}

	if err := copyFile(src, dst); err != nil {
		return false, fmt.Errorf("link fallback (copy) failed: %w", err)
	}
	return false, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
