package history

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// scratchCopy duplicates src into dir so the original, which a running
// browser may hold locked, is never opened by SQLite. The returned cleanup
// removes the copy and is safe to call on every exit path.
func scratchCopy(src, dir string, b Browser) (string, func(), error) {
	in, err := os.Open(src)
	if err != nil {
		return "", nil, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.CreateTemp(dir, strings.ToLower(string(b))+"_history_*.db")
	if err != nil {
		return "", nil, fmt.Errorf("create scratch copy: %w", err)
	}
	path := out.Name()
	cleanup := func() {
		for _, suffix := range []string{"", "-wal", "-shm", "-journal"} {
			_ = os.Remove(path + suffix)
		}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		cleanup()
		return "", nil, fmt.Errorf("copy to scratch: %w", err)
	}
	if err := out.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close scratch copy: %w", err)
	}

	return path, cleanup, nil
}
