// Package archive files receipt images into a year-partitioned tree of
// standardized names, and is the single authority for what those names
// look like.
//
// An archived receipt lives at receipts/<year>/<date>_<slug>_<amount><ext>
// where the slug is the lowercased provider name with every
// non-alphanumeric character replaced by an underscore, and the amount is
// the shortest decimal rendering of the value. The stored Receipt_URL is
// this path relative to the ledger root, always with forward slashes.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"hsaledger/internal/dateutils"
	"hsaledger/internal/fileutils"
	"hsaledger/internal/ingesterror"
	"hsaledger/internal/logging"
)

const (
	// slugMaxLen bounds provider slugs so filenames stay manageable.
	slugMaxLen = 30

	// unknownSlug stands in when extraction produced no provider at all.
	unknownSlug = "unknown"
)

// Slug converts a provider name into its filename form: lowercased, every
// non-alphanumeric character replaced by an underscore, truncated to
// thirty characters. An empty provider slugs as "unknown".
func Slug(provider string) string {
	if provider == "" {
		return unknownSlug
	}

	var b strings.Builder
	for _, r := range provider {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune('_')
		}
	}

	runes := []rune(b.String())
	if len(runes) > slugMaxLen {
		runes = runes[:slugMaxLen]
	}
	return string(runes)
}

// Name builds the archive filename for an expense. The extension keeps
// whatever the source file carried, lowercased.
func Name(date, provider string, amount decimal.Decimal, ext string) string {
	return fmt.Sprintf("%s_%s_%s%s", date, Slug(provider), amount.String(), strings.ToLower(ext))
}

// Store copies receipts into the archive tree.
type Store struct {
	receiptsDir string
	logger      logging.Logger
}

// NewStore creates a Store rooted at receiptsDir, conventionally
// <ledger root>/receipts. The tree is created on first archive.
func NewStore(receiptsDir string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{
		receiptsDir: receiptsDir,
		logger:      logger,
	}
}

// ReceiptsDir returns the root of the archive tree.
func (s *Store) ReceiptsDir() string {
	return s.receiptsDir
}

// Plan returns the absolute destination and the ledger-relative path an
// expense's receipt would be archived under, without touching the
// filesystem. Dry runs report the relative path as if the copy happened.
func (s *Store) Plan(sourcePath, date, provider string, amount decimal.Decimal) (destPath, relPath string) {
	return s.paths(dateutils.YearOf(date), Name(date, provider, amount, filepath.Ext(sourcePath)))
}

// Resolve turns a stored Receipt_URL back into an absolute path. URLs are
// relative to the parent of the receipts directory.
func (s *Store) Resolve(receiptURL string) string {
	return filepath.Join(filepath.Dir(s.receiptsDir), filepath.FromSlash(receiptURL))
}

// Archive copies a receipt into the tree and returns its Receipt_URL.
// The source is copied, never moved, with mode and modification time
// preserved. When the destination already holds the same bytes the
// existing entry is reused; when it holds different bytes the new file
// gets a content-hash suffix so neither receipt is lost.
func (s *Store) Archive(sourcePath, date, provider string, amount decimal.Decimal) (string, error) {
	year := dateutils.YearOf(date)
	name := Name(date, provider, amount, filepath.Ext(sourcePath))
	dest, rel := s.paths(year, name)

	if fileutils.FileExists(dest) {
		same, err := sameContent(sourcePath, dest)
		if err != nil {
			return "", &ingesterror.PersistenceError{Op: "archive compare", Path: dest, Err: err}
		}
		if same {
			s.logger.WithField(logging.FieldFile, rel).Debug("Receipt already archived")
			return rel, nil
		}

		sum, err := fileHash(sourcePath)
		if err != nil {
			return "", &ingesterror.PersistenceError{Op: "archive hash", Path: sourcePath, Err: err}
		}
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + "_" + sum[:8] + ext
		dest, rel = s.paths(year, name)

		// The suffix is the content hash, so an existing file under the
		// disambiguated name already holds these bytes.
		if fileutils.FileExists(dest) {
			s.logger.WithField(logging.FieldFile, rel).Debug("Receipt already archived")
			return rel, nil
		}
	}

	if err := fileutils.CopyPreservingMetadata(sourcePath, dest); err != nil {
		return "", &ingesterror.PersistenceError{Op: "archive copy", Path: dest, Err: err}
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: sourcePath},
		logging.Field{Key: logging.FieldStatus, Value: rel},
	).Debug("Archived receipt")
	return rel, nil
}

func (s *Store) paths(year, name string) (destPath, relPath string) {
	destPath = filepath.Join(s.receiptsDir, year, name)
	relPath = path.Join(filepath.Base(s.receiptsDir), year, name)
	return destPath, relPath
}

func fileHash(filePath string) (string, error) {
	file, err := os.Open(filePath) // #nosec G304 - archive paths are derived from validated ingest input
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sameContent(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	hashA, err := fileHash(a)
	if err != nil {
		return false, err
	}
	hashB, err := fileHash(b)
	if err != nil {
		return false, err
	}
	return hashA == hashB, nil
}
