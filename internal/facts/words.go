package facts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
)

// Resource is a file read during expansion, identified by its content
// digest so cached expansions can be revalidated.
type Resource struct {
	Path   string
	Digest string
}

type WordsFacts struct {
	Words   []string
	Sources []Resource
}

// ReadFunc reads one resource file.
type ReadFunc func(path string) ([]byte, error)

// ResolvePath resolves a literal path against root. Absolute paths are
// used as they are.
func ResolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Words reads every listed file and splits its contents on white space.
// Words keep file order, then in-file order.
func Words(ctx context.Context, root string, list *ast.PathList, read ReadFunc) (*WordsFacts, *errors.CompilerError) {
	if read == nil {
		read = os.ReadFile
	}

	facts := &WordsFacts{}
	for _, lit := range list.Paths {
		if err := ctx.Err(); err != nil {
			return nil, errors.MissingResource(lit.Value, lit.Span, err)
		}
		path := ResolvePath(root, lit.Value)
		data, err := read(path)
		if err != nil {
			return nil, errors.MissingResource(lit.Value, lit.Span, err)
		}
		facts.Words = append(facts.Words, strings.Fields(string(data))...)
		facts.Sources = append(facts.Sources, Resource{Path: path, Digest: Digest(data)})
	}
	return facts, nil
}
