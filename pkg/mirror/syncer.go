package mirror

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cubbit/objsync/internal/logger"
	"github.com/cubbit/objsync/pkg/remote"
)

// Object is the view of a remote object a sync needs. *remote.Handle
// implements it; tests substitute fakes.
type Object interface {
	Exists(ctx context.Context) bool
	ModifiedAt(ctx context.Context) (time.Time, bool)
	Content(ctx context.Context) ([]byte, bool)
	Ref() remote.ObjectRef
}

var _ Object = (*remote.Handle)(nil)

// Outcome reports what one SyncFile call observed and did.
//
// Invariants:
//   - Copied implies Exists and not UpToDate
//   - not Exists implies neither UpToDate nor Copied
type Outcome struct {
	// Exists is true when the remote object was reachable
	Exists bool `json:"exists"`

	// UpToDate is true when the local file was already current
	UpToDate bool `json:"upToDate"`

	// Copied is true when remote content was written to the local path
	Copied bool `json:"copied"`
}

// Syncer mirrors single remote objects into local files.
type Syncer struct {
	// DirMode is the permission mode for created parent directories
	DirMode os.FileMode

	// FileMode is the permission mode for written files
	FileMode os.FileMode
}

// NewSyncer returns a Syncer writing with the given permission modes.
// Zero modes fall back to 0755 directories and 0644 files.
func NewSyncer(dirMode, fileMode os.FileMode) *Syncer {
	if dirMode == 0 {
		dirMode = 0755
	}
	if fileMode == 0 {
		fileMode = 0644
	}

	return &Syncer{DirMode: dirMode, FileMode: fileMode}
}

// SyncFile brings localPath in line with the remote object behind obj.
//
// The call queries the remote side, compares it against the local file
// and copies the content down when the local file is absent or older.
// At most one filesystem write happens per call, and only when the
// remote object exists and the local file is not current.
//
// SyncFile never returns an error: remote failures read as an absent
// object (see the remote package documentation) and a failed write reads
// as Copied false. Failures are logged, not raised.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - obj: Remote object to mirror
//   - localPath: Destination file path; parent directories are created
//
// Returns:
//   - Outcome: What was observed and whether a copy happened
func (s *Syncer) SyncFile(ctx context.Context, obj Object, localPath string) Outcome {
	if err := ctx.Err(); err != nil {
		logger.Debug("sync of %s cancelled before start: %v", localPath, err)
		return Outcome{}
	}

	remoteExists := obj.Exists(ctx)
	remoteModifiedAt, _ := obj.ModifiedAt(ctx)
	localModifiedAt, localExists := localFileModifiedAt(localPath)

	decision := Evaluate(remoteExists, remoteModifiedAt, localExists, localModifiedAt)
	logger.Debug("sync decision for %s: %s", localPath, decision.State)

	switch decision.State {
	case StateMissing:
		return Outcome{}
	case StateUpToDate:
		return Outcome{Exists: true, UpToDate: true}
	}

	return Outcome{Exists: true, Copied: s.copy(ctx, obj, localPath)}
}

// copy fetches the remote content and writes it over localPath.
func (s *Syncer) copy(ctx context.Context, obj Object, localPath string) bool {
	data, ok := obj.Content(ctx)
	if !ok {
		logger.Warn("no content available for %s, skipping copy of %s", obj.Ref(), localPath)
		return false
	}

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, s.DirMode); err != nil {
			logger.Warn("failed to create directory %s: %v", dir, err)
			return false
		}
	}

	if err := os.WriteFile(localPath, data, s.FileMode); err != nil {
		logger.Warn("failed to write %s: %v", localPath, err)
		return false
	}

	logger.Info("copied %s to %s (%d bytes)", obj.Ref(), localPath, len(data))
	return true
}

// localFileModifiedAt stats path. Any stat failure reads as "no local
// file", mirroring the conflation on the remote side.
func localFileModifiedAt(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	if info.IsDir() {
		return time.Time{}, false
	}

	return info.ModTime(), true
}
