package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/buildtools/internal/messages"
)

type fileLock struct {
	file *os.File
}

var flockFn = unix.Flock

var (
	lockWaitTimeout = 5 * time.Minute
	lockPollEvery   = 100 * time.Millisecond
)

// withFileLock holds an exclusive lock on path while fn runs.
// Installers sharing an install root serialize per platform and tool.
func withFileLock(ctx context.Context, path string, fn func() error) error {
	lock, err := acquireFileLock(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.release()
	}()
	return fn()
}

// acquireFileLock opens or creates path and waits for an exclusive lock.
// It gives up when ctx is done or lockWaitTimeout elapses.
func acquireFileLock(ctx context.Context, path string) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallOpenLockFmt, path, err)
	}
	if err := lockFile(ctx, file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.InstallLockFmt, path, err)
	}
	return &fileLock{file: file}, nil
}

func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := flockFn(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

// lockFile retries a non-blocking flock every lockPollEvery.
func lockFile(ctx context.Context, file *os.File) error {
	timeout := time.NewTimer(lockWaitTimeout)
	defer timeout.Stop()
	poll := time.NewTicker(lockPollEvery)
	defer poll.Stop()

	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout.C:
			return fmt.Errorf(messages.InstallLockTimeoutFmt, lockWaitTimeout)
		case <-poll.C:
		}
	}
}
