package sift

import (
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock guards the output directory so two review sessions cannot interleave
// writes. Held for the whole session.
type Lock struct {
	lock *flock.Flock
}

// AcquireLock takes the session lock under dir, failing fast with ErrLocked
// when another session holds it.
func AcquireLock(dir string) (*Lock, error) {
	lock := flock.New(filepath.Join(dir, "reelsift.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrOutput, "lock", "acquire session lock", err)
	}
	if !ok {
		return nil, Wrap(ErrLocked, "lock", "another review session is using "+dir, nil)
	}
	return &Lock{lock: lock}, nil
}

// Release drops the lock. Safe on a nil receiver.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
