// Package fetch downloads a zip archive and extracts a single entry from it.
package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"

	"github.com/conn-castle/buildtools/internal/config"
	"github.com/conn-castle/buildtools/internal/messages"
)

var (
	osCreateTemp = createTemp
	osRename     = os.Rename
	osStat       = os.Stat
)

// createTemp creates a uniquely named file in dir with mode 0644 less the umask,
// matching a plain file create. os.CreateTemp would force 0600.
func createTemp(dir string, base string) (*os.File, error) {
	for range 100 {
		name := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", base, rand.Uint32()))
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, &fs.PathError{Op: "createtemp", Path: filepath.Join(dir, "."+base+".tmp-*"), Err: fs.ErrExist}
}

// Fetcher performs archive downloads.
type Fetcher struct {
	Client *http.Client
	// MaxBytes bounds the buffered response body. Zero means config.DefaultMaxDownloadBytes.
	MaxBytes int64
}

// Result describes a successful FetchAndExtract call.
type Result struct {
	// Path is the extracted file.
	Path string
	// Skipped is true when the file already existed and no request was made.
	Skipped bool
	// Bytes is the size of the downloaded archive.
	Bytes int64
}

// New returns a Fetcher configured from cfg.
func New(cfg *config.Config) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	f := &Fetcher{Client: &http.Client{Transport: transport}}
	if cfg == nil {
		return f
	}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in escape hatch
	}
	f.MaxBytes = cfg.MaxDownloadBytes
	return f
}

// FetchAndExtract downloads url with a single GET, opens the body as a zip archive and writes
// entry to destDir/entry. An existing file at that path is only replaced once the new content
// is fully written. Every returned error is an *Error.
func (f *Fetcher) FetchAndExtract(ctx context.Context, url string, destDir string, entry string, skipIfPresent bool) (Result, error) {
	dest := filepath.Join(destDir, entry)
	if skipIfPresent {
		info, err := osStat(dest)
		if err == nil && info.Mode().IsRegular() {
			return Result{Path: dest, Skipped: true}, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Result{}, &Error{Kind: KindFilesystem, URL: url, Err: fmt.Errorf(messages.FetchCheckExistingFmt, dest, err)}
		}
	}

	body, err := f.download(ctx, url)
	if err != nil {
		return Result{}, err
	}

	data, err := readEntry(body, url, entry)
	if err != nil {
		return Result{}, err
	}

	if err := writeAtomic(dest, data); err != nil {
		return Result{}, &Error{Kind: KindFilesystem, URL: url, Err: err}
	}
	return Result{Path: dest, Bytes: int64(len(body))}, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: fmt.Errorf(messages.FetchCreateRequestFmt, url, err)}
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: fmt.Errorf(messages.FetchRequestFailedFmt, url, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:       KindHTTPStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf(messages.FetchUnexpectedStatusFmt, url, resp.Status),
		}
	}

	maxBytes := f.maxBytes()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: fmt.Errorf(messages.FetchReadBodyFmt, url, err)}
	}
	if int64(len(body)) > maxBytes {
		return nil, &Error{Kind: KindArchive, URL: url, Err: fmt.Errorf(messages.FetchTooLargeFmt, url, maxBytes)}
	}
	return body, nil
}

func (f *Fetcher) client() *http.Client {
	if f == nil || f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func (f *Fetcher) maxBytes() int64 {
	if f == nil || f.MaxBytes <= 0 {
		return config.DefaultMaxDownloadBytes
	}
	return f.MaxBytes
}

// readEntry returns the contents of the named entry from a zip archive held in memory.
func readEntry(body []byte, url string, entry string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, &Error{Kind: KindArchive, URL: url, Err: fmt.Errorf(messages.FetchOpenZipFmt, url, err)}
	}
	for _, file := range zr.File {
		if file.Name != entry {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, &Error{Kind: KindArchive, URL: url, Err: fmt.Errorf(messages.FetchOpenEntryFmt, entry, err)}
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, &Error{Kind: KindArchive, URL: url, Err: fmt.Errorf(messages.FetchOpenEntryFmt, entry, err)}
		}
		return data, nil
	}
	return nil, &Error{Kind: KindArchive, URL: url, Err: fmt.Errorf(messages.FetchEntryNotFoundFmt, entry, url)}
}

// writeAtomic writes data to a temp file next to dest and renames it into place.
// The temp file keeps the mode of an existing dest so a re-download does not drop its executable bit.
func writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.FetchCreateDestDirFmt, dir, err)
	}

	tmp, err := osCreateTemp(dir, filepath.Base(dest))
	if err != nil {
		return fmt.Errorf(messages.FetchCreateTempFileFmt, dir, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FetchWriteTempFileFmt, dest, err)
	}
	if info, err := osStat(dest); err == nil {
		_ = tmp.Chmod(info.Mode().Perm())
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FetchSyncTempFileFmt, dest, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.FetchCloseTempFileFmt, dest, err)
	}
	if err := osRename(tmpName, dest); err != nil {
		return fmt.Errorf(messages.FetchRenameTempFileFmt, dest, err)
	}
	committed = true
	return nil
}
